package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	ID            string         `db:"id"`
	Date          time.Time      `db:"date"`
	BusinessID    string         `db:"business_id"`
	Description   string         `db:"description"`
	TransactionID sql.NullString `db:"transaction_id"` // null for standalone invoices
	InvoiceID     sql.NullString `db:"invoice_id"`
	CreatedAt     time.Time      `db:"created_at"`
	Seq           int64          `db:"seq"`
}

// JournalEntryLine is a row of the journal_entry_lines table.
type JournalEntryLine struct {
	EntryID     string          `db:"entry_id"`
	LineNo      int             `db:"line_no"`
	AccountCode string          `db:"account_code"`
	AccountName string          `db:"account_name"` // snapshot at posting time
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
}
