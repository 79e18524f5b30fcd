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

type dashboardService struct {
	BaseService
	txRepo portsrepo.TransactionReader
	taxSvc portssvc.TaxSvc
}

// DashboardServiceOption is a functional option for configuring the dashboard service
type DashboardServiceOption func(*dashboardService)

// WithDashboardClock sets the clock period presets and the trend window are resolved against.
func WithDashboardClock(clock func() time.Time) DashboardServiceOption {
	return func(s *dashboardService) {
		s.Clock = clock
	}
}

// NewDashboardService creates a new dashboard service with the provided options
func NewDashboardService(txRepo portsrepo.TransactionReader, taxSvc portssvc.TaxSvc, options ...DashboardServiceOption) portssvc.DashboardSvc {
	svc := &dashboardService{txRepo: txRepo, taxSvc: taxSvc}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

// GetDashboardMetrics returns cash totals for the period, its IGV position and the recent monthly trend.
func (s *dashboardService) GetDashboardMetrics(ctx context.Context, businessID string, period domain.Period) (*domain.DashboardMetrics, error) {
	now := s.Now()

	periodTxs, _, err := s.txRepo.ListTransactions(ctx, portsrepo.TransactionFilter{BusinessID: businessID, Range: period.Resolve(now)})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for dashboard", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	trendTxs, _, err := s.txRepo.ListTransactions(ctx, portsrepo.TransactionFilter{BusinessID: businessID, Range: accounting.TrendRange(now)})
	if err != nil {
		s.LogError(ctx, err, "Failed to load trend transactions for dashboard", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	tax, err := s.taxSvc.GetTaxSummary(ctx, businessID, period, "")
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	metrics := accounting.BuildDashboard(periodTxs, *tax, accounting.MonthlyTrend(trendTxs, now))
	return &metrics, nil
}
