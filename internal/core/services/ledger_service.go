package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
)

// ledgerService aggregates journal entry lines into ledgers and statements.
type ledgerService struct {
	BaseService
	journalRepo portsrepo.JournalReader
	chartRepo   portsrepo.ChartReader
	cache       portssvc.ReportCache
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerReportCache serves reports through cache.
func WithLedgerReportCache(cache portssvc.ReportCache) LedgerServiceOption {
	return func(s *ledgerService) {
		s.cache = cache
	}
}

// WithLedgerClock sets the clock period presets are resolved against.
func WithLedgerClock(clock func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.Clock = clock
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(journalRepo portsrepo.JournalReader, chartRepo portsrepo.ChartReader, options ...LedgerServiceOption) portssvc.LedgerSvc {
	svc := &ledgerService{
		journalRepo: journalRepo,
		chartRepo:   chartRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// GetGeneralLedger returns per-account running ledgers for the filter.
func (s *ledgerService) GetGeneralLedger(ctx context.Context, filter domain.LedgerFilter) ([]domain.AccountLedger, error) {
	rng := filter.Period.Resolve(s.Now())
	accountCode := filter.AccountCode
	if domain.AllAccounts(accountCode) {
		accountCode = ""
	}
	params := append(rangeParams(rng), accountCode)

	ledgers, err := fetchReport(ctx, s.cache, filter.BusinessID, "general-ledger", params, func(ctx context.Context) ([]domain.AccountLedger, error) {
		entries, err := s.journalRepo.ListJournalEntries(ctx, portsrepo.JournalFilter{
			BusinessID:  filter.BusinessID,
			Range:       rng,
			AccountCode: accountCode,
		})
		if err != nil {
			return nil, err
		}
		return accounting.BuildGeneralLedger(entries, accountCode), nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to build general ledger",
			slog.String("business_id", filter.BusinessID),
			slog.String("period", string(filter.Period)))
		return nil, fmt.Errorf("failed to build general ledger: %w", err)
	}

	s.LogDebug(ctx, "General ledger generated", slog.Int("account_count", len(ledgers)))
	return ledgers, nil
}

// GetAccountBalances returns statement rows. Balance sheets accumulate everything up to the period end.
func (s *ledgerService) GetAccountBalances(ctx context.Context, filter domain.StatementFilter, kind domain.StatementKind) ([]domain.AccountBalance, error) {
	rng := filter.Period.Resolve(s.Now())
	switch kind {
	case domain.IncomeStatementKind:
	case domain.BalanceSheetKind:
		rng = rng.Through()
	default:
		verr := apperrors.NewValidationError("getAccountBalances")
		verr.Add("kind", "must be incomeStatement or balanceSheet")
		return nil, verr
	}

	rows, err := fetchReport(ctx, s.cache, filter.BusinessID, string(kind), rangeParams(rng), func(ctx context.Context) ([]domain.AccountBalance, error) {
		chart, err := s.chartRepo.ListChartAccounts(ctx)
		if err != nil {
			return nil, err
		}
		entries, err := s.journalRepo.ListJournalEntries(ctx, portsrepo.JournalFilter{BusinessID: filter.BusinessID, Range: rng})
		if err != nil {
			return nil, err
		}
		return accounting.AccountBalances(chart, accounting.RawBalances(entries), kind)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to compute account balances",
			slog.String("business_id", filter.BusinessID),
			slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to compute %s balances: %w", kind, err)
	}
	return rows, nil
}

// GetIncomeStatement totals income and expense accounts over the period.
func (s *ledgerService) GetIncomeStatement(ctx context.Context, filter domain.StatementFilter) (*domain.IncomeStatement, error) {
	rows, err := s.GetAccountBalances(ctx, filter, domain.IncomeStatementKind)
	if err != nil {
		return nil, err
	}
	statement := accounting.BuildIncomeStatement(rows, filter.Period.Resolve(s.Now()))
	return &statement, nil
}

// GetBalanceSheet groups balance sheet accounts as of the period end and checks the accounting equation.
func (s *ledgerService) GetBalanceSheet(ctx context.Context, filter domain.StatementFilter) (*domain.BalanceSheet, error) {
	rows, err := s.GetAccountBalances(ctx, filter, domain.BalanceSheetKind)
	if err != nil {
		return nil, err
	}
	sheet := accounting.BuildBalanceSheet(rows, filter.Period.Resolve(s.Now()).End)
	if sheet.Unbalanced {
		s.LogWarn(ctx, "Balance sheet does not balance",
			slog.String("business_id", filter.BusinessID),
			slog.String("difference", sheet.Difference.StringFixed(2)))
	}
	return &sheet, nil
}

// GetFinancialRatios derives ratios from the balance sheet and the period's net income.
func (s *ledgerService) GetFinancialRatios(ctx context.Context, filter domain.StatementFilter) (*domain.FinancialRatios, error) {
	sheet, err := s.GetBalanceSheet(ctx, filter)
	if err != nil {
		return nil, err
	}
	statement, err := s.GetIncomeStatement(ctx, filter)
	if err != nil {
		return nil, err
	}
	ratios := accounting.FinancialRatios(*sheet, statement.NetIncome)
	return &ratios, nil
}
