package services

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
)

// ContainerOptions carries the optional collaborators shared by several services.
type ContainerOptions struct {
	Cache           portssvc.ReportCache
	Observer        portssvc.PostingObserver
	Clock           func() time.Time
	DefaultCurrency string
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(rules domain.MappingRules, repos portsrepo.RepositoryProvider, opts ContainerOptions) (*portssvc.ServiceContainer, error) {
	mapper, err := NewAccountMapper(rules)
	if err != nil {
		return nil, err
	}

	container := &portssvc.ServiceContainer{}

	postingOpts := []PostingServiceOption{WithDefaultCurrency(opts.DefaultCurrency)}
	ledgerOpts := []LedgerServiceOption{}
	cashOpts := []CashPositionServiceOption{}
	taxOpts := []TaxServiceOption{}
	dashboardOpts := []DashboardServiceOption{}

	// Interface values holding a typed nil would defeat the nil checks inside the services.
	if opts.Cache != nil {
		postingOpts = append(postingOpts, WithPostingReportCache(opts.Cache))
		ledgerOpts = append(ledgerOpts, WithLedgerReportCache(opts.Cache))
		cashOpts = append(cashOpts, WithCashPositionReportCache(opts.Cache))
		taxOpts = append(taxOpts, WithTaxReportCache(opts.Cache))
	}
	if opts.Observer != nil {
		postingOpts = append(postingOpts, WithPostingObserver(opts.Observer))
	}
	if opts.Clock != nil {
		postingOpts = append(postingOpts, WithPostingClock(opts.Clock))
		ledgerOpts = append(ledgerOpts, WithLedgerClock(opts.Clock))
		cashOpts = append(cashOpts, WithCashPositionClock(opts.Clock))
		taxOpts = append(taxOpts, WithTaxClock(opts.Clock))
		dashboardOpts = append(dashboardOpts, WithDashboardClock(opts.Clock))
	}

	container.Reference = NewReferenceService(repos.ReferenceRepo)
	container.Posting = NewPostingService(repos.PostingRepo, repos.ReferenceRepo, mapper, postingOpts...)
	container.Ledger = NewLedgerService(repos.PostingRepo, repos.ReferenceRepo, ledgerOpts...)
	container.CashPosition = NewCashPositionService(repos.PostingRepo, repos.ReferenceRepo, cashOpts...)
	container.Tax = NewTaxService(repos.PostingRepo, rules.TaxCurrency, taxOpts...)
	container.Dashboard = NewDashboardService(repos.PostingRepo, container.Tax, dashboardOpts...)

	return container, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PostingSvcFacade   = (*postingService)(nil)
	_ portssvc.ReferenceSvcFacade = (*referenceService)(nil)
)
