// Package memory keeps the bookkeeping tables in process memory. It backs STORE=memory
// deployments, local runs without PostgreSQL, and the store-level tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/utils/pagination"
)

// Store holds every table behind one lock, so each write is applied whole or not at all.
type Store struct {
	mu sync.RWMutex

	businesses      map[string]domain.Business
	chart           map[string]domain.ChartAccount
	categories      map[int]domain.TransactionCategory
	paymentAccounts map[string]domain.PaymentAccount

	transactions map[string]domain.Transaction
	invoices     map[string]domain.Invoice // with items
	entries      map[string]domain.JournalEntry

	txKeys      map[string]string // idempotency key -> transaction id
	invoiceKeys map[string]string // idempotency key -> invoice id

	seq int64 // last insertion sequence handed out
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		businesses:      map[string]domain.Business{},
		chart:           map[string]domain.ChartAccount{},
		categories:      map[int]domain.TransactionCategory{},
		paymentAccounts: map[string]domain.PaymentAccount{},
		transactions:    map[string]domain.Transaction{},
		invoices:        map[string]domain.Invoice{},
		entries:         map[string]domain.JournalEntry{},
		txKeys:          map[string]string{},
		invoiceKeys:     map[string]string{},
	}
}

var (
	_ portsrepo.PostingRepositoryFacade   = (*Store)(nil)
	_ portsrepo.ReferenceRepositoryFacade = (*Store)(nil)
)

// NewRepositoryProvider exposes one store through both repository facades.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{ReferenceRepo: s, PostingRepo: s}
}

// SavePosting checks every key and id before touching any table.
func (s *Store) SavePosting(_ context.Context, posting domain.Posting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inv := posting.Invoice; inv != nil {
		if _, ok := s.invoices[inv.ID]; ok {
			return apperrors.NewAppError(409, "invoice "+inv.ID+" already exists", apperrors.ErrDuplicate)
		}
		if inv.IdempotencyKey != nil {
			if _, ok := s.invoiceKeys[*inv.IdempotencyKey]; ok {
				return apperrors.NewAppError(409, "invoice idempotency key reused", apperrors.ErrDuplicate)
			}
		}
	}
	if tx := posting.Transaction; tx != nil {
		if _, ok := s.transactions[tx.ID]; ok {
			return apperrors.NewAppError(409, "transaction "+tx.ID+" already exists", apperrors.ErrDuplicate)
		}
		if tx.IdempotencyKey != nil {
			if _, ok := s.txKeys[*tx.IdempotencyKey]; ok {
				return apperrors.NewAppError(409, "transaction idempotency key reused", apperrors.ErrDuplicate)
			}
		}
		if tx.InvoiceID != nil && (posting.Invoice == nil || posting.Invoice.ID != *tx.InvoiceID) {
			if _, ok := s.invoices[*tx.InvoiceID]; !ok {
				return apperrors.NewAppError(500, "transaction references missing invoice "+*tx.InvoiceID, nil)
			}
		}
	}
	if _, ok := s.entries[posting.Entry.ID]; ok {
		return apperrors.NewAppError(409, "journal entry "+posting.Entry.ID+" already exists", apperrors.ErrDuplicate)
	}

	if posting.Invoice != nil {
		inv := cloneInvoice(*posting.Invoice)
		inv.Seq = s.nextSeq()
		s.invoices[inv.ID] = inv
		if inv.IdempotencyKey != nil {
			s.invoiceKeys[*inv.IdempotencyKey] = inv.ID
		}
	}
	if posting.Transaction != nil {
		tx := *posting.Transaction
		tx.Seq = s.nextSeq()
		s.transactions[tx.ID] = tx
		if tx.IdempotencyKey != nil {
			s.txKeys[*tx.IdempotencyKey] = tx.ID
		}
	}
	s.insertEntry(posting.Entry)
	return nil
}

// nextSeq hands out the insertion sequence; callers hold the write lock.
func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func (s *Store) insertEntry(e domain.JournalEntry) {
	e = cloneEntry(e)
	e.Seq = s.nextSeq()
	s.entries[e.ID] = e
}

// ReplaceTransactionPosting overwrites the transaction and swaps its journal entries for posting.Entry.
func (s *Store) ReplaceTransactionPosting(_ context.Context, posting domain.Posting) error {
	if posting.Transaction == nil {
		return apperrors.NewAppError(500, "replace posting without a transaction", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := *posting.Transaction
	existing, ok := s.transactions[tx.ID]
	if !ok {
		return apperrors.NewNotFoundError("transaction " + tx.ID)
	}
	if other, ok := s.entries[posting.Entry.ID]; ok && !belongsTo(other, tx.ID) {
		return apperrors.NewAppError(409, "journal entry "+posting.Entry.ID+" already exists", apperrors.ErrDuplicate)
	}

	// Identity columns are not rewritten by an update.
	tx.CreatedAt = existing.CreatedAt
	tx.IsInvoiced = existing.IsInvoiced
	tx.InvoiceID = existing.InvoiceID
	tx.IdempotencyKey = existing.IdempotencyKey
	tx.Seq = existing.Seq
	s.transactions[tx.ID] = tx

	s.deleteEntriesWhere(func(e domain.JournalEntry) bool { return belongsTo(e, tx.ID) })
	s.insertEntry(posting.Entry)
	return nil
}

// DeleteTransactionCascade removes a transaction, its entries, and its invoice when linked.
func (s *Store) DeleteTransactionCascade(_ context.Context, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[transactionID]
	if !ok {
		return apperrors.NewNotFoundError("transaction " + transactionID)
	}
	s.deleteTransaction(tx)
	if tx.InvoiceID != nil {
		s.deleteInvoice(*tx.InvoiceID)
	}
	return nil
}

// DeleteInvoiceCascade removes an invoice, its linked transactions and every related entry.
func (s *Store) DeleteInvoiceCascade(_ context.Context, invoiceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[invoiceID]; !ok {
		return apperrors.NewNotFoundError("invoice " + invoiceID)
	}
	s.deleteInvoice(invoiceID)
	return nil
}

func (s *Store) deleteTransaction(tx domain.Transaction) {
	s.deleteEntriesWhere(func(e domain.JournalEntry) bool { return belongsTo(e, tx.ID) })
	delete(s.transactions, tx.ID)
	if tx.IdempotencyKey != nil {
		delete(s.txKeys, *tx.IdempotencyKey)
	}
}

func (s *Store) deleteInvoice(invoiceID string) {
	for _, tx := range s.transactions {
		if tx.InvoiceID != nil && *tx.InvoiceID == invoiceID {
			s.deleteTransaction(tx)
		}
	}
	s.deleteEntriesWhere(func(e domain.JournalEntry) bool {
		return e.InvoiceID != nil && *e.InvoiceID == invoiceID
	})
	if inv, ok := s.invoices[invoiceID]; ok {
		if inv.IdempotencyKey != nil {
			delete(s.invoiceKeys, *inv.IdempotencyKey)
		}
		delete(s.invoices, invoiceID)
	}
}

func (s *Store) deleteEntriesWhere(match func(domain.JournalEntry) bool) {
	for id, e := range s.entries {
		if match(e) {
			delete(s.entries, id)
		}
	}
}

func belongsTo(e domain.JournalEntry, transactionID string) bool {
	return e.TransactionID != nil && *e.TransactionID == transactionID
}

// FindTransactionByID returns a copy of one transaction.
func (s *Store) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction " + transactionID)
	}
	return &tx, nil
}

// ListTransactions pages transactions newest first with the same cursor the SQL store uses.
func (s *Store) ListTransactions(_ context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
	cursor, err := decodeCursor(filter.NextToken)
	if err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	list := make([]domain.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if !domain.MatchesBusiness(filter.BusinessID, tx.BusinessID) || !filter.Range.Contains(tx.Date) {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if cursor != nil && !cursor.Before(tx.Date, tx.CreatedAt, tx.Seq) {
			continue
		}
		list = append(list, tx)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return newerThan(list[i].Date, list[i].CreatedAt, list[i].Seq, list[j].Date, list[j].CreatedAt, list[j].Seq)
	})

	var next *string
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
		last := list[len(list)-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, Seq: last.Seq})
		next = &token
	}
	return list, next, nil
}

// FindInvoiceByID returns a copy of one invoice with its items.
func (s *Store) FindInvoiceByID(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[invoiceID]
	if !ok {
		return nil, apperrors.NewNotFoundError("invoice " + invoiceID)
	}
	inv = cloneInvoice(inv)
	return &inv, nil
}

// ListInvoices pages invoices newest first; items are left unloaded as in the SQL store.
func (s *Store) ListInvoices(_ context.Context, filter portsrepo.InvoiceFilter) ([]domain.Invoice, *string, error) {
	cursor, err := decodeCursor(filter.NextToken)
	if err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	list := make([]domain.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		if !domain.MatchesBusiness(filter.BusinessID, inv.BusinessID) || !filter.Range.Contains(inv.Date) {
			continue
		}
		if filter.Type != "" && inv.Type != filter.Type {
			continue
		}
		if filter.Currency != "" && inv.Currency != filter.Currency {
			continue
		}
		if cursor != nil && !cursor.Before(inv.Date, inv.CreatedAt, inv.Seq) {
			continue
		}
		inv.Items = nil
		list = append(list, inv)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return newerThan(list[i].Date, list[i].CreatedAt, list[i].Seq, list[j].Date, list[j].CreatedAt, list[j].Seq)
	})

	var next *string
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
		last := list[len(list)-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, Seq: last.Seq})
		next = &token
	}
	return list, next, nil
}

// ListJournalEntries returns matching entries oldest first with their lines.
func (s *Store) ListJournalEntries(_ context.Context, filter portsrepo.JournalFilter) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	list := []domain.JournalEntry{}
	for _, e := range s.entries {
		if !domain.MatchesBusiness(filter.BusinessID, e.BusinessID) || !filter.Range.Contains(e.Date) {
			continue
		}
		if !domain.AllAccounts(filter.AccountCode) && !touches(e, filter.AccountCode) {
			continue
		}
		list = append(list, cloneEntry(e))
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return newerThan(list[j].Date, list[j].CreatedAt, list[j].Seq, list[i].Date, list[i].CreatedAt, list[i].Seq)
	})
	return list, nil
}

func touches(e domain.JournalEntry, code string) bool {
	for _, l := range e.Lines {
		if l.AccountCode == code {
			return true
		}
	}
	return false
}

func decodeCursor(token *string) (*pagination.Cursor, error) {
	if token == nil || *token == "" {
		return nil, nil
	}
	c, err := pagination.DecodeToken(*token)
	if err != nil {
		return nil, apperrors.NewAppError(400, "invalid nextToken", err)
	}
	return &c, nil
}

func cloneInvoice(inv domain.Invoice) domain.Invoice {
	if inv.Items != nil {
		inv.Items = append([]domain.InvoiceItem(nil), inv.Items...)
	}
	return inv
}

func cloneEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = append([]domain.JournalEntryLine(nil), e.Lines...)
	return e
}
