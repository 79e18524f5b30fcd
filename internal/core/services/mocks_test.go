package services_test

import (
	"context"
	"reflect"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock PostingRepository ---
type MockPostingRepository struct {
	mock.Mock
}

// Ensure MockPostingRepository implements portsrepo.PostingRepositoryFacade
var _ portsrepo.PostingRepositoryFacade = (*MockPostingRepository)(nil)

func (m *MockPostingRepository) SavePosting(ctx context.Context, posting domain.Posting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}

func (m *MockPostingRepository) ReplaceTransactionPosting(ctx context.Context, posting domain.Posting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}

func (m *MockPostingRepository) DeleteTransactionCascade(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockPostingRepository) DeleteInvoiceCascade(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func (m *MockPostingRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

func (m *MockPostingRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockPostingRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.Invoice), next, args.Error(2)
}

func (m *MockPostingRepository) ListJournalEntries(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Mock ReferenceRepository ---
type MockReferenceRepository struct {
	mock.Mock
}

var _ portsrepo.ReferenceRepositoryFacade = (*MockReferenceRepository)(nil)

func (m *MockReferenceRepository) ListChartAccounts(ctx context.Context) ([]domain.ChartAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartAccount), args.Error(1)
}

func (m *MockReferenceRepository) FindChartAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.ChartAccount, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ChartAccount), args.Error(1)
}

func (m *MockReferenceRepository) ListCategories(ctx context.Context) ([]domain.TransactionCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionCategory), args.Error(1)
}

func (m *MockReferenceRepository) ListPaymentAccounts(ctx context.Context, activeOnly bool) ([]domain.PaymentAccount, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAccount), args.Error(1)
}

func (m *MockReferenceRepository) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Business), args.Error(1)
}

func (m *MockReferenceRepository) SeedReferenceData(ctx context.Context, data domain.ReferenceData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

// --- Mock ReportCache ---
// Fetch records the call and then behaves as a cache miss, running the loader.
type MockReportCache struct {
	mock.Mock
}

var _ portssvc.ReportCache = (*MockReportCache)(nil)

func (m *MockReportCache) Fetch(ctx context.Context, businessID, report string, params []string, dest any, loader func(ctx context.Context) (any, error)) error {
	args := m.Called(ctx, businessID, report, params)
	if err := args.Error(0); err != nil {
		return err
	}
	v, err := loader(ctx)
	if err != nil {
		return err
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(v))
	return nil
}

func (m *MockReportCache) Invalidate(ctx context.Context, businessID string) error {
	args := m.Called(ctx, businessID)
	return args.Error(0)
}

// --- Mock PostingObserver ---
type MockPostingObserver struct {
	mock.Mock
}

var _ portssvc.PostingObserver = (*MockPostingObserver)(nil)

func (m *MockPostingObserver) ObservePosting(operation string, result *domain.PostingResult) {
	m.Called(operation, result)
}

func (m *MockPostingObserver) ObserveFallbacks(fallbacks []domain.Fallback) {
	m.Called(fallbacks)
}
