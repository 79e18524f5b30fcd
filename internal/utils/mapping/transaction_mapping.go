package mapping

import (
	"database/sql"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		ID:             d.ID,
		Date:           d.Date,
		Type:           string(d.Type),
		BusinessID:     d.BusinessID,
		Amount:         d.Amount,
		Currency:       d.Currency,
		FromAccount:    NullIfEmpty(d.FromAccount),
		ToAccount:      NullIfEmpty(d.ToAccount),
		Description:    d.Description,
		Reference:      NullIfEmpty(d.Reference),
		IsInvoiced:     d.IsInvoiced,
		InvoiceID:      NullString(d.InvoiceID),
		IdempotencyKey: NullString(d.IdempotencyKey),
		CreatedAt:      d.CreatedAt,
		Seq:            d.Seq,
	}
	if d.CategoryID != nil {
		m.CategoryID = sql.NullInt32{Int32: int32(*d.CategoryID), Valid: true}
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		ID:             m.ID,
		Date:           m.Date,
		Type:           domain.TransactionType(m.Type),
		BusinessID:     m.BusinessID,
		Amount:         m.Amount,
		Currency:       m.Currency,
		FromAccount:    m.FromAccount.String,
		ToAccount:      m.ToAccount.String,
		Description:    m.Description,
		Reference:      m.Reference.String,
		IsInvoiced:     m.IsInvoiced,
		InvoiceID:      StringPtr(m.InvoiceID),
		IdempotencyKey: StringPtr(m.IdempotencyKey),
		CreatedAt:      m.CreatedAt,
		Seq:            m.Seq,
	}
	if m.CategoryID.Valid {
		id := int(m.CategoryID.Int32)
		d.CategoryID = &id
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// NullString converts an optional string to its nullable column value.
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullIfEmpty stores an empty string as NULL.
func NullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// StringPtr converts a nullable column value back to an optional string.
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
