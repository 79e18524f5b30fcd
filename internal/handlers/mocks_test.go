package handlers_test

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) PostTransaction(ctx context.Context, req dto.TransactionInput) (*domain.PostingResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockPostingService) PostInvoicedTransaction(ctx context.Context, req dto.InvoicedTransactionInput) (*domain.PostingResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockPostingService) PostStandaloneInvoice(ctx context.Context, req dto.InvoiceInput) (*domain.PostingResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockPostingService) UpdateTransaction(ctx context.Context, transactionID string, req dto.TransactionInput) (*domain.PostingResult, error) {
	args := m.Called(ctx, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockPostingService) DeleteTransaction(ctx context.Context, transactionID string) error {
	return m.Called(ctx, transactionID).Error(0)
}

func (m *MockPostingService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return m.Called(ctx, invoiceID).Error(0)
}

func (m *MockPostingService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockPostingService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockPostingService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListInvoicesResponse), args.Error(1)
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetGeneralLedger(ctx context.Context, filter domain.LedgerFilter) ([]domain.AccountLedger, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountLedger), args.Error(1)
}

func (m *MockLedgerService) GetAccountBalances(ctx context.Context, filter domain.StatementFilter, kind domain.StatementKind) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, filter, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockLedgerService) GetIncomeStatement(ctx context.Context, filter domain.StatementFilter) (*domain.IncomeStatement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatement), args.Error(1)
}

func (m *MockLedgerService) GetBalanceSheet(ctx context.Context, filter domain.StatementFilter) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

func (m *MockLedgerService) GetFinancialRatios(ctx context.Context, filter domain.StatementFilter) (*domain.FinancialRatios, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialRatios), args.Error(1)
}

var _ portssvc.LedgerSvc = (*MockLedgerService)(nil)

// --- Mock report services ---
type MockCashPositionService struct {
	mock.Mock
}

func (m *MockCashPositionService) GetPaymentAccountBalances(ctx context.Context, businessID string, period domain.Period) ([]domain.PaymentAccountBalance, error) {
	args := m.Called(ctx, businessID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAccountBalance), args.Error(1)
}

type MockTaxService struct {
	mock.Mock
}

func (m *MockTaxService) GetTaxSummary(ctx context.Context, businessID string, period domain.Period, currency string) (*domain.TaxSummary, error) {
	args := m.Called(ctx, businessID, period, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSummary), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetDashboardMetrics(ctx context.Context, businessID string, period domain.Period) (*domain.DashboardMetrics, error) {
	args := m.Called(ctx, businessID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardMetrics), args.Error(1)
}

var (
	_ portssvc.CashPositionSvc = (*MockCashPositionService)(nil)
	_ portssvc.TaxSvc          = (*MockTaxService)(nil)
	_ portssvc.DashboardSvc    = (*MockDashboardService)(nil)
)

// --- Mock ReferenceService ---
type MockReferenceService struct {
	mock.Mock
}

func (m *MockReferenceService) ListChartOfAccounts(ctx context.Context) ([]domain.ChartAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartAccount), args.Error(1)
}

func (m *MockReferenceService) ListCategories(ctx context.Context, categoryType domain.CategoryType) ([]domain.TransactionCategory, error) {
	args := m.Called(ctx, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionCategory), args.Error(1)
}

func (m *MockReferenceService) ListPaymentAccounts(ctx context.Context, activeOnly bool) ([]domain.PaymentAccount, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAccount), args.Error(1)
}

func (m *MockReferenceService) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Business), args.Error(1)
}

func (m *MockReferenceService) SeedReferenceData(ctx context.Context, data domain.ReferenceData) error {
	return m.Called(ctx, data).Error(0)
}

var _ portssvc.ReferenceSvcFacade = (*MockReferenceService)(nil)
