package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry (lines excluded)
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		ID:            d.ID,
		Date:          d.Date,
		BusinessID:    d.BusinessID,
		Description:   d.Description,
		TransactionID: NullString(d.TransactionID),
		InvoiceID:     NullString(d.InvoiceID),
		CreatedAt:     d.CreatedAt,
		Seq:           d.Seq,
	}
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalEntryLine) domain.JournalEntry {
	d := domain.JournalEntry{
		ID:            m.ID,
		Date:          m.Date,
		BusinessID:    m.BusinessID,
		Description:   m.Description,
		TransactionID: StringPtr(m.TransactionID),
		InvoiceID:     StringPtr(m.InvoiceID),
		CreatedAt:     m.CreatedAt,
		Seq:           m.Seq,
		Lines:         make([]domain.JournalEntryLine, len(lines)),
	}
	for i, l := range lines {
		d.Lines[i] = ToDomainJournalEntryLine(l)
	}
	return d
}

// ToModelJournalEntryLine converts a domain JournalEntryLine to a model JournalEntryLine
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		EntryID:     d.EntryID,
		LineNo:      d.LineNo,
		AccountCode: d.AccountCode,
		AccountName: d.AccountName,
		Debit:       d.Debit,
		Credit:      d.Credit,
	}
}

// ToDomainJournalEntryLine converts a model JournalEntryLine to a domain JournalEntryLine
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		EntryID:     m.EntryID,
		LineNo:      m.LineNo,
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
		Debit:       m.Debit,
		Credit:      m.Credit,
	}
}
