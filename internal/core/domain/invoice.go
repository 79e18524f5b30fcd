package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes issued (sale) from received (purchase) invoices.
type InvoiceType string

const (
	InvoiceSale     InvoiceType = "sale"
	InvoicePurchase InvoiceType = "purchase"
)

// InvoiceTypeFor returns the invoice type an invoiced transaction of txType produces.
func InvoiceTypeFor(txType TransactionType) InvoiceType {
	if txType == TxIncome {
		return InvoiceSale
	}
	return InvoicePurchase
}

// DefaultClientName is used on invoices created without a client or supplier name.
const DefaultClientName = "Sin nombre"

// Invoice is a tax document. Total always equals Subtotal + IGV.
type Invoice struct {
	ID             string          `json:"id"`
	Type           InvoiceType     `json:"type"`
	Date           time.Time       `json:"date"`
	BusinessID     string          `json:"businessId"`
	ClientSupplier string          `json:"clientSupplier"`
	RUC            *string         `json:"ruc,omitempty"` // tax id
	InvoiceNumber  string          `json:"invoiceNumber"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	IGV            decimal.Decimal `json:"igv"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
	Items          []InvoiceItem   `json:"items"`
	IdempotencyKey *string         `json:"idempotencyKey,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	Seq            int64           `json:"-"` // insertion order, assigned by the store
}

// InvoiceItem is one line on an invoice.
type InvoiceItem struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoiceId"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// NewInvoiceItem builds an item whose total is quantity × unit price rounded to cents.
func NewInvoiceItem(id, invoiceID, description string, quantity, unitPrice decimal.Decimal) InvoiceItem {
	return InvoiceItem{
		ID:          id,
		InvoiceID:   invoiceID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       quantity.Mul(unitPrice).Round(2),
	}
}
