package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one balanced accounting event. TransactionID is nil only for standalone invoices.
type JournalEntry struct {
	ID            string             `json:"id"`
	Date          time.Time          `json:"date"`
	BusinessID    string             `json:"businessId"`
	Description   string             `json:"description"`
	TransactionID *string            `json:"transactionId,omitempty"`
	InvoiceID     *string            `json:"invoiceId,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	Seq           int64              `json:"-"` // insertion order, assigned by the store
	Lines         []JournalEntryLine `json:"lines"`
}

// JournalEntryLine is a single debit or credit. AccountName is a snapshot taken at posting time.
type JournalEntryLine struct {
	EntryID     string          `json:"entryId"`
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// Totals sums the debit and credit columns.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// IsBalanced reports whether debits equal credits at cent precision.
func (e JournalEntry) IsBalanced() bool {
	debit, credit := e.Totals()
	return debit.Round(2).Equal(credit.Round(2))
}

// Posting is everything one posting operation writes atomically.
type Posting struct {
	Transaction *Transaction
	Invoice     *Invoice
	Entry       JournalEntry
}

// FallbackRole names which side of a posting a fallback was applied to.
type FallbackRole string

const (
	FallbackDebit       FallbackRole = "debit"
	FallbackCredit      FallbackRole = "credit"
	FallbackNarrative   FallbackRole = "narrative"
	FallbackAccountName FallbackRole = "accountName"
)

// Fallback records a reference that could not be resolved and the default used in its place.
type Fallback struct {
	Role      FallbackRole `json:"role"`
	Reference string       `json:"reference"` // what the caller gave (account name, category id, code)
	UsedValue string       `json:"usedValue"` // what was stored instead
	Reason    string       `json:"reason"`
}

// PostingResult is returned to callers of the posting operations.
type PostingResult struct {
	TransactionID  *string    `json:"transactionId,omitempty"`
	InvoiceID      *string    `json:"invoiceId,omitempty"`
	JournalEntryID string     `json:"journalEntryId"`
	Fallbacks      []Fallback `json:"fallbacks,omitempty"`
}
