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

// taxService summarizes IGV from sale and purchase invoices.
type taxService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceReader
	taxCurrency string
	cache       portssvc.ReportCache
}

// TaxServiceOption is a functional option for configuring the tax service
type TaxServiceOption func(*taxService)

// WithTaxReportCache serves summaries through cache.
func WithTaxReportCache(cache portssvc.ReportCache) TaxServiceOption {
	return func(s *taxService) {
		s.cache = cache
	}
}

// WithTaxClock sets the clock period presets are resolved against.
func WithTaxClock(clock func() time.Time) TaxServiceOption {
	return func(s *taxService) {
		s.Clock = clock
	}
}

// NewTaxService creates a tax service. Only invoices in taxCurrency contribute to the summary.
func NewTaxService(invoiceRepo portsrepo.InvoiceReader, taxCurrency string, options ...TaxServiceOption) portssvc.TaxSvc {
	if taxCurrency == "" {
		taxCurrency = domain.DefaultCurrency
	}
	svc := &taxService{invoiceRepo: invoiceRepo, taxCurrency: taxCurrency}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TaxSvc = (*taxService)(nil)

// GetTaxSummary returns output tax, input tax credit and the net position for the period.
func (s *taxService) GetTaxSummary(ctx context.Context, businessID string, period domain.Period, currency string) (*domain.TaxSummary, error) {
	rng := period.Resolve(s.Now())
	params := append(rangeParams(rng), currency)

	summary, err := fetchReport(ctx, s.cache, businessID, "tax-summary", params, func(ctx context.Context) (domain.TaxSummary, error) {
		invoices, _, err := s.invoiceRepo.ListInvoices(ctx, portsrepo.InvoiceFilter{BusinessID: businessID, Range: rng})
		if err != nil {
			return domain.TaxSummary{}, err
		}
		return accounting.SummarizeTax(invoices, s.taxCurrency, currency), nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize tax",
			slog.String("business_id", businessID),
			slog.String("period", string(period)))
		return nil, fmt.Errorf("failed to summarize tax: %w", err)
	}
	return &summary, nil
}
