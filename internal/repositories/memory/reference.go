package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/utils/pagination"
)

func (s *Store) ListChartAccounts(_ context.Context) ([]domain.ChartAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]domain.ChartAccount, 0, len(s.chart))
	for _, a := range s.chart {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

func (s *Store) FindChartAccountsByCodes(_ context.Context, codes []string) (map[string]domain.ChartAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]domain.ChartAccount, len(codes))
	for _, code := range codes {
		if a, ok := s.chart[code]; ok {
			result[code] = a
		}
	}
	return result, nil
}

func (s *Store) ListCategories(_ context.Context) ([]domain.TransactionCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]domain.TransactionCategory, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (s *Store) ListPaymentAccounts(_ context.Context, activeOnly bool) ([]domain.PaymentAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]domain.PaymentAccount, 0, len(s.paymentAccounts))
	for _, p := range s.paymentAccounts {
		if activeOnly && !p.IsActive {
			continue
		}
		accounts = append(accounts, p)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}

func (s *Store) ListBusinesses(_ context.Context) ([]domain.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	businesses := make([]domain.Business, 0, len(s.businesses))
	for _, b := range s.businesses {
		businesses = append(businesses, b)
	}
	sort.Slice(businesses, func(i, j int) bool { return businesses[i].Name < businesses[j].Name })
	return businesses, nil
}

// SeedReferenceData upserts every lookup row by its key.
func (s *Store) SeedReferenceData(_ context.Context, data domain.ReferenceData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range data.Businesses {
		s.businesses[b.ID] = b
	}
	for _, a := range data.Chart {
		s.chart[a.Code] = a
	}
	for _, c := range data.Categories {
		s.categories[c.ID] = c
	}
	for _, p := range data.PaymentAccounts {
		s.paymentAccounts[p.ID] = p
	}
	return nil
}

// newerThan orders rows by date, then creation time, then insertion sequence, all descending.
func newerThan(aDate, aCreated time.Time, aSeq int64, bDate, bCreated time.Time, bSeq int64) bool {
	return pagination.Cursor{Date: aDate, CreatedAt: aCreated, Seq: aSeq}.Before(bDate, bCreated, bSeq)
}
