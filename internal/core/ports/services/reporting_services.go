package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// LedgerSvc derives ledgers and statements from journal entry lines
type LedgerSvc interface {
	// GetGeneralLedger groups lines per account with running balances.
	GetGeneralLedger(ctx context.Context, filter domain.LedgerFilter) ([]domain.AccountLedger, error)

	// GetAccountBalances returns display-signed, non-zero statement rows.
	// Income statements use the whole period; balance sheets everything up to its end.
	GetAccountBalances(ctx context.Context, filter domain.StatementFilter, kind domain.StatementKind) ([]domain.AccountBalance, error)

	GetIncomeStatement(ctx context.Context, filter domain.StatementFilter) (*domain.IncomeStatement, error)

	// GetBalanceSheet groups balance rows and flags a violated accounting equation without correcting it.
	GetBalanceSheet(ctx context.Context, filter domain.StatementFilter) (*domain.BalanceSheet, error)

	GetFinancialRatios(ctx context.Context, filter domain.StatementFilter) (*domain.FinancialRatios, error)
}

// CashPositionSvc replays transactions per payment account
type CashPositionSvc interface {
	GetPaymentAccountBalances(ctx context.Context, businessID string, period domain.Period) ([]domain.PaymentAccountBalance, error)
}

// TaxSvc summarizes IGV from invoices
type TaxSvc interface {
	// GetTaxSummary sums IGV of sale and purchase invoices. An empty currency means the tax currency.
	GetTaxSummary(ctx context.Context, businessID string, period domain.Period, currency string) (*domain.TaxSummary, error)
}

// DashboardSvc builds headline metrics for a business
type DashboardSvc interface {
	GetDashboardMetrics(ctx context.Context, businessID string, period domain.Period) (*domain.DashboardMetrics, error)
}

// ReportCache memoizes report results per business. Invalidate drops every cached report of a business
// (and of the "all businesses" view).
type ReportCache interface {
	Fetch(ctx context.Context, businessID, report string, params []string, dest any, loader func(ctx context.Context) (any, error)) error
	Invalidate(ctx context.Context, businessID string) error
}
