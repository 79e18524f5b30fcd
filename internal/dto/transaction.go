package dto

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format accepted on input.
const DateLayout = "2006-01-02"

// TransactionInput is the payload for posting or editing a cash transaction.
type TransactionInput struct {
	Date           string                 `json:"date" binding:"required,datetime=2006-01-02"`
	Type           domain.TransactionType `json:"type" binding:"required,oneof=income expense transfer"`
	BusinessID     string                 `json:"businessId" binding:"required"`
	CategoryID     *int                   `json:"categoryId,omitempty" binding:"omitempty,gt=0"`
	Amount         decimal.Decimal        `json:"amount"` // must be > 0, checked by the posting service
	Currency       string                 `json:"currency,omitempty" binding:"omitempty,max=10"`
	FromAccount    string                 `json:"fromAccount,omitempty" binding:"max=100"`
	ToAccount      string                 `json:"toAccount,omitempty" binding:"max=100"`
	Description    string                 `json:"description" binding:"max=500"`
	Reference      string                 `json:"reference,omitempty" binding:"max=100"`
	IdempotencyKey string                 `json:"idempotencyKey,omitempty" binding:"omitempty,max=128"`
}

// InvoiceFields are the extra fields a transaction carries when it is invoiced.
type InvoiceFields struct {
	IsInvoiced     bool   `json:"isInvoiced"`
	InvoiceNumber  string `json:"invoiceNumber,omitempty" binding:"max=50"`
	ClientSupplier string `json:"clientSupplier,omitempty" binding:"max=200"`
	RUC            string `json:"ruc,omitempty" binding:"omitempty,numeric,len=11"`
}

// InvoicedTransactionInput is a transaction that may also issue or record an invoice.
type InvoicedTransactionInput struct {
	TransactionInput
	InvoiceFields
}

// ListTransactionsParams are the query parameters for listing transactions.
type ListTransactionsParams struct {
	BusinessID string  `form:"businessId"`
	Period     string  `form:"period"`
	Type       string  `form:"type" binding:"omitempty,oneof=income expense transfer"`
	Limit      int     `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken  *string `form:"nextToken"`
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	NextToken    *string              `json:"nextToken,omitempty"`
}
