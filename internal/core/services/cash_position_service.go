package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
)

// cashPositionService replays transactions into per-payment-account balances, independently of the journal.
type cashPositionService struct {
	BaseService
	txRepo  portsrepo.TransactionReader
	refRepo portsrepo.ReferenceReader
	cache   portssvc.ReportCache
}

// CashPositionServiceOption is a functional option for configuring the cash position service
type CashPositionServiceOption func(*cashPositionService)

// WithCashPositionReportCache serves reports through cache.
func WithCashPositionReportCache(cache portssvc.ReportCache) CashPositionServiceOption {
	return func(s *cashPositionService) {
		s.cache = cache
	}
}

// WithCashPositionClock sets the clock period presets are resolved against.
func WithCashPositionClock(clock func() time.Time) CashPositionServiceOption {
	return func(s *cashPositionService) {
		s.Clock = clock
	}
}

// NewCashPositionService creates a new cash position service with the provided options
func NewCashPositionService(txRepo portsrepo.TransactionReader, refRepo portsrepo.ReferenceReader, options ...CashPositionServiceOption) portssvc.CashPositionSvc {
	svc := &cashPositionService{txRepo: txRepo, refRepo: refRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CashPositionSvc = (*cashPositionService)(nil)

// GetPaymentAccountBalances returns movements and running balances for every active payment account.
func (s *cashPositionService) GetPaymentAccountBalances(ctx context.Context, businessID string, period domain.Period) ([]domain.PaymentAccountBalance, error) {
	rng := period.Resolve(s.Now())

	balances, err := fetchReport(ctx, s.cache, businessID, "payment-accounts", rangeParams(rng), func(ctx context.Context) ([]domain.PaymentAccountBalance, error) {
		accounts, err := s.refRepo.ListPaymentAccounts(ctx, true)
		if err != nil {
			return nil, err
		}
		txs, _, err := s.txRepo.ListTransactions(ctx, portsrepo.TransactionFilter{BusinessID: businessID, Range: rng})
		if err != nil {
			return nil, err
		}
		businesses, err := s.refRepo.ListBusinesses(ctx)
		if err != nil {
			return nil, err
		}
		names := make(map[string]string, len(businesses))
		for _, b := range businesses {
			names[b.ID] = b.Name
		}
		return accounting.ReplayPaymentAccounts(accounts, txs, names), nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to compute payment account balances",
			slog.String("business_id", businessID),
			slog.String("period", string(period)))
		return nil, fmt.Errorf("failed to compute payment account balances: %w", err)
	}
	return balances, nil
}
