package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// ReferenceReaderSvc lists lookup tables
type ReferenceReaderSvc interface {
	ListChartOfAccounts(ctx context.Context) ([]domain.ChartAccount, error)
	ListCategories(ctx context.Context, categoryType domain.CategoryType) ([]domain.TransactionCategory, error)
	ListPaymentAccounts(ctx context.Context, activeOnly bool) ([]domain.PaymentAccount, error)
	ListBusinesses(ctx context.Context) ([]domain.Business, error)
}

// ReferenceWriterSvc seeds lookup tables
type ReferenceWriterSvc interface {
	SeedReferenceData(ctx context.Context, data domain.ReferenceData) error
}

// ReferenceSvcFacade combines all reference data service interfaces
type ReferenceSvcFacade interface {
	ReferenceReaderSvc
	ReferenceWriterSvc
}
