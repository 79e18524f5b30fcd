package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// ChartReader defines read operations for the chart of accounts
type ChartReader interface {
	// ListChartAccounts returns every chart account ordered by code.
	ListChartAccounts(ctx context.Context) ([]domain.ChartAccount, error)

	// FindChartAccountsByCodes returns the chart accounts for the given codes, keyed by code.
	// Unknown codes are simply absent from the map.
	FindChartAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.ChartAccount, error)
}

// ReferenceReader defines read operations for all lookup tables
type ReferenceReader interface {
	ChartReader

	// ListCategories returns transaction categories ordered by id.
	ListCategories(ctx context.Context) ([]domain.TransactionCategory, error)

	// ListPaymentAccounts returns payment accounts ordered by name.
	ListPaymentAccounts(ctx context.Context, activeOnly bool) ([]domain.PaymentAccount, error)

	// ListBusinesses returns businesses ordered by name.
	ListBusinesses(ctx context.Context) ([]domain.Business, error)
}

// ReferenceWriter defines write operations for lookup tables
type ReferenceWriter interface {
	// SeedReferenceData upserts all lookup tables in one transaction.
	SeedReferenceData(ctx context.Context, data domain.ReferenceData) error
}

// ReferenceRepositoryFacade combines all reference data repository interfaces
type ReferenceRepositoryFacade interface {
	ReferenceReader
	ReferenceWriter
}
