package dto

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemInput is one caller-supplied invoice line.
type InvoiceItemInput struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// InvoiceInput is the payload for an invoice entered without a cash transaction.
// Subtotal, IGV and Total are optional; missing figures are derived from the items.
type InvoiceInput struct {
	Type           domain.InvoiceType `json:"type" binding:"required,oneof=sale purchase"`
	Date           string             `json:"date" binding:"required,datetime=2006-01-02"`
	BusinessID     string             `json:"businessId" binding:"required"`
	ClientSupplier string             `json:"clientSupplier,omitempty" binding:"max=200"`
	RUC            string             `json:"ruc,omitempty" binding:"omitempty,numeric,len=11"`
	InvoiceNumber  string             `json:"invoiceNumber" binding:"required,max=50"`
	Subtotal       *decimal.Decimal   `json:"subtotal,omitempty"`
	IGV            *decimal.Decimal   `json:"igv,omitempty"`
	Total          *decimal.Decimal   `json:"total,omitempty"`
	Currency       string             `json:"currency,omitempty" binding:"omitempty,max=10"`
	Items          []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
	IdempotencyKey string             `json:"idempotencyKey,omitempty" binding:"omitempty,max=128"`
}

// ListInvoicesParams are the query parameters for listing invoices.
type ListInvoicesParams struct {
	BusinessID string  `form:"businessId"`
	Period     string  `form:"period"`
	Type       string  `form:"type" binding:"omitempty,oneof=sale purchase"`
	Currency   string  `form:"currency"`
	Limit      int     `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken  *string `form:"nextToken"`
}

// ListInvoicesResponse is one page of invoices.
type ListInvoicesResponse struct {
	Invoices  []domain.Invoice `json:"invoices"`
	NextToken *string          `json:"nextToken,omitempty"`
}
