package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
)

// referenceService serves and seeds the lookup tables.
type referenceService struct {
	BaseService
	refRepo portsrepo.ReferenceRepositoryFacade
}

// NewReferenceService creates a new reference data service.
func NewReferenceService(refRepo portsrepo.ReferenceRepositoryFacade) portssvc.ReferenceSvcFacade {
	return &referenceService{refRepo: refRepo}
}

var _ portssvc.ReferenceSvcFacade = (*referenceService)(nil)

func (s *referenceService) ListChartOfAccounts(ctx context.Context) ([]domain.ChartAccount, error) {
	accounts, err := s.refRepo.ListChartAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list chart of accounts")
		return nil, fmt.Errorf("failed to list chart of accounts: %w", err)
	}
	return accounts, nil
}

// ListCategories lists categories, optionally only those of one type.
func (s *referenceService) ListCategories(ctx context.Context, categoryType domain.CategoryType) ([]domain.TransactionCategory, error) {
	categories, err := s.refRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categoryType == "" {
		return categories, nil
	}
	filtered := make([]domain.TransactionCategory, 0, len(categories))
	for _, c := range categories {
		if c.Type == categoryType {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (s *referenceService) ListPaymentAccounts(ctx context.Context, activeOnly bool) ([]domain.PaymentAccount, error) {
	accounts, err := s.refRepo.ListPaymentAccounts(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payment accounts")
		return nil, fmt.Errorf("failed to list payment accounts: %w", err)
	}
	return accounts, nil
}

func (s *referenceService) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	businesses, err := s.refRepo.ListBusinesses(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list businesses")
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}

// SeedReferenceData validates and upserts all lookup tables.
func (s *referenceService) SeedReferenceData(ctx context.Context, data domain.ReferenceData) error {
	if err := validateReferenceData(data); err != nil {
		return err
	}
	if err := s.refRepo.SeedReferenceData(ctx, data); err != nil {
		s.LogError(ctx, err, "Failed to seed reference data")
		return fmt.Errorf("failed to seed reference data: %w", err)
	}
	s.LogInfo(ctx, "Reference data seeded",
		slog.Int("businesses", len(data.Businesses)),
		slog.Int("accounts", len(data.Chart)),
		slog.Int("categories", len(data.Categories)),
		slog.Int("payment_accounts", len(data.PaymentAccounts)))
	return nil
}

func validateReferenceData(data domain.ReferenceData) error {
	verr := apperrors.NewValidationError("seedReferenceData")
	codes := make(map[string]bool, len(data.Chart))
	for i, acc := range data.Chart {
		field := fmt.Sprintf("chartOfAccounts[%d]", i)
		if acc.Code == "" {
			verr.Add(field+".code", "is required")
		} else if codes[acc.Code] {
			verr.Add(field+".code", "duplicate code "+acc.Code)
		}
		codes[acc.Code] = true
		if !acc.AccountType.Valid() {
			verr.Add(field+".accountType", "must be asset, liability, equity, income or expense")
		}
	}
	for i, acc := range data.Chart {
		if acc.ParentCode != nil && !codes[*acc.ParentCode] {
			verr.Add(fmt.Sprintf("chartOfAccounts[%d].parentCode", i), "unknown parent "+*acc.ParentCode)
		}
	}
	for i, c := range data.Categories {
		if c.ID <= 0 {
			verr.Add(fmt.Sprintf("categories[%d].id", i), "must be positive")
		}
		if c.Type != domain.CategoryIncome && c.Type != domain.CategoryExpense {
			verr.Add(fmt.Sprintf("categories[%d].type", i), "must be income or expense")
		}
	}
	names := make(map[string]bool, len(data.PaymentAccounts))
	for i, p := range data.PaymentAccounts {
		if p.Name == "" {
			verr.Add(fmt.Sprintf("paymentAccounts[%d].name", i), "is required")
		} else if names[p.Name] {
			verr.Add(fmt.Sprintf("paymentAccounts[%d].name", i), "duplicate name "+p.Name)
		}
		names[p.Name] = true
	}
	for i, b := range data.Businesses {
		if b.ID == "" || b.Name == "" {
			verr.Add(fmt.Sprintf("businesses[%d]", i), "id and name are required")
		}
	}
	return verr.OrNil()
}
