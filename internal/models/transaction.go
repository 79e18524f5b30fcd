package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
// Nullable columns use the database/sql null types; pgx scans into them directly.
type Transaction struct {
	ID             string          `db:"id"`
	Date           time.Time       `db:"date"`
	Type           string          `db:"type"` // income, expense or transfer
	BusinessID     string          `db:"business_id"`
	CategoryID     sql.NullInt32   `db:"category_id"`
	Amount         decimal.Decimal `db:"amount"`
	Currency       string          `db:"currency"`
	FromAccount    sql.NullString  `db:"from_account"`
	ToAccount      sql.NullString  `db:"to_account"`
	Description    string          `db:"description"`
	Reference      sql.NullString  `db:"reference"`
	IsInvoiced     bool            `db:"is_invoiced"`
	InvoiceID      sql.NullString  `db:"invoice_id"`
	IdempotencyKey sql.NullString  `db:"idempotency_key"`
	CreatedAt      time.Time       `db:"created_at"`
	Seq            int64           `db:"seq"`
}
