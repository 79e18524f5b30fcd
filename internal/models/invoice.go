package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table.
type Invoice struct {
	ID             string          `db:"id"`
	Type           string          `db:"type"` // sale or purchase
	Date           time.Time       `db:"date"`
	BusinessID     string          `db:"business_id"`
	ClientSupplier string          `db:"client_supplier"`
	RUC            sql.NullString  `db:"ruc"`
	InvoiceNumber  string          `db:"invoice_number"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	IGV            decimal.Decimal `db:"igv"`
	Total          decimal.Decimal `db:"total"`
	Currency       string          `db:"currency"`
	IdempotencyKey sql.NullString  `db:"idempotency_key"`
	CreatedAt      time.Time       `db:"created_at"`
	Seq            int64           `db:"seq"`
}

// InvoiceItem is a row of the invoice_items table.
type InvoiceItem struct {
	ID          string          `db:"id"`
	InvoiceID   string          `db:"invoice_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Total       decimal.Decimal `db:"total"`
}
