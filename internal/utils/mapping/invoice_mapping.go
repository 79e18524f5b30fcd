package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice (items excluded)
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		ID:             d.ID,
		Type:           string(d.Type),
		Date:           d.Date,
		BusinessID:     d.BusinessID,
		ClientSupplier: d.ClientSupplier,
		RUC:            NullString(d.RUC),
		InvoiceNumber:  d.InvoiceNumber,
		Subtotal:       d.Subtotal,
		IGV:            d.IGV,
		Total:          d.Total,
		Currency:       d.Currency,
		IdempotencyKey: NullString(d.IdempotencyKey),
		CreatedAt:      d.CreatedAt,
		Seq:            d.Seq,
	}
}

// ToDomainInvoice converts a model Invoice and its items to a domain Invoice.
// A nil items slice leaves Items nil, which listings use to signal "not loaded".
func ToDomainInvoice(m models.Invoice, items []models.InvoiceItem) domain.Invoice {
	d := domain.Invoice{
		ID:             m.ID,
		Type:           domain.InvoiceType(m.Type),
		Date:           m.Date,
		BusinessID:     m.BusinessID,
		ClientSupplier: m.ClientSupplier,
		RUC:            StringPtr(m.RUC),
		InvoiceNumber:  m.InvoiceNumber,
		Subtotal:       m.Subtotal,
		IGV:            m.IGV,
		Total:          m.Total,
		Currency:       m.Currency,
		IdempotencyKey: StringPtr(m.IdempotencyKey),
		CreatedAt:      m.CreatedAt,
		Seq:            m.Seq,
	}
	if items != nil {
		d.Items = make([]domain.InvoiceItem, len(items))
		for i, it := range items {
			d.Items[i] = ToDomainInvoiceItem(it)
		}
	}
	return d
}

// ToModelInvoiceItem converts a domain InvoiceItem to a model InvoiceItem
func ToModelInvoiceItem(d domain.InvoiceItem) models.InvoiceItem {
	return models.InvoiceItem{
		ID:          d.ID,
		InvoiceID:   d.InvoiceID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Total:       d.Total,
	}
}

// ToDomainInvoiceItem converts a model InvoiceItem to a domain InvoiceItem
func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	return domain.InvoiceItem{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Total:       m.Total,
	}
}
