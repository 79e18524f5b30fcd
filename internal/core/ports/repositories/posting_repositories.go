package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// TransactionFilter narrows transaction listings. Limit <= 0 returns every match without paging.
type TransactionFilter struct {
	BusinessID string
	Range      domain.DateRange
	Type       domain.TransactionType
	Limit      int
	NextToken  *string
}

// InvoiceFilter narrows invoice listings. Limit <= 0 returns every match without paging.
type InvoiceFilter struct {
	BusinessID string
	Range      domain.DateRange
	Type       domain.InvoiceType
	Currency   string
	Limit      int
	NextToken  *string
}

// JournalFilter narrows journal entry reads. AccountCode keeps entries with at least one line on that account.
type JournalFilter struct {
	BusinessID  string
	Range       domain.DateRange
	AccountCode string
}

// PostingWriter defines the atomic write operations of the posting engine
type PostingWriter interface {
	// SavePosting inserts the transaction and/or invoice (with items) and the journal entry (with lines)
	// in one database transaction. A reused idempotency key fails with apperrors.ErrDuplicate.
	SavePosting(ctx context.Context, posting domain.Posting) error

	// ReplaceTransactionPosting updates the transaction row and swaps its journal entry for posting.Entry
	// in one database transaction.
	ReplaceTransactionPosting(ctx context.Context, posting domain.Posting) error

	// DeleteTransactionCascade removes a transaction, its journal entries and lines, and its invoice
	// (with the invoice's items and entries) if it has one.
	DeleteTransactionCascade(ctx context.Context, transactionID string) error

	// DeleteInvoiceCascade removes an invoice, its items, every transaction linked to it, and all journal
	// entries and lines belonging to either.
	DeleteInvoiceCascade(ctx context.Context, invoiceID string) error
}

// TransactionReader defines read operations for transactions
type TransactionReader interface {
	// FindTransactionByID retrieves one transaction or apperrors.ErrNotFound.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns matching transactions newest first and a token for the next page.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, *string, error)
}

// InvoiceReader defines read operations for invoices
type InvoiceReader interface {
	// FindInvoiceByID retrieves one invoice with its items or apperrors.ErrNotFound.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices returns matching invoices newest first (items not loaded) and a token for the next page.
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, *string, error)
}

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// ListJournalEntries returns matching entries with all their lines, ordered by date then creation time.
	ListJournalEntries(ctx context.Context, filter JournalFilter) ([]domain.JournalEntry, error)
}

// PostingRepositoryFacade combines all posting-related repository interfaces
type PostingRepositoryFacade interface {
	PostingWriter
	TransactionReader
	InvoiceReader
	JournalReader
}
