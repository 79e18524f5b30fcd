package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// PostingWriterSvc defines the write operations of the posting engine.
// Every call either commits the event together with its balanced journal entry or nothing at all.
type PostingWriterSvc interface {
	// PostTransaction records a cash transaction and its two-line journal entry.
	PostTransaction(ctx context.Context, req dto.TransactionInput) (*domain.PostingResult, error)

	// PostInvoicedTransaction records a transaction that also issues (income) or receives (expense) an invoice.
	// Transfers and requests with IsInvoiced unset are posted as plain transactions.
	PostInvoicedTransaction(ctx context.Context, req dto.InvoicedTransactionInput) (*domain.PostingResult, error)

	// PostStandaloneInvoice records an invoice entered without a cash transaction.
	PostStandaloneInvoice(ctx context.Context, req dto.InvoiceInput) (*domain.PostingResult, error)

	// UpdateTransaction rewrites a non-invoiced transaction and regenerates its journal entry.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.TransactionInput) (*domain.PostingResult, error)

	// DeleteTransaction removes a transaction with its journal entry and, if invoiced, its invoice.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// DeleteInvoice removes an invoice with its items, linked transactions and journal entries.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// PostingReaderSvc defines read operations for posted events
type PostingReaderSvc interface {
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// PostingSvcFacade combines all posting-related service interfaces
type PostingSvcFacade interface {
	PostingWriterSvc
	PostingReaderSvc
}

// PostingObserver is notified after every committed write. Implementations must not block.
type PostingObserver interface {
	ObservePosting(operation string, result *domain.PostingResult)
	ObserveFallbacks(fallbacks []domain.Fallback)
}
