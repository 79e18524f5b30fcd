package services

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
)

// fetchReport serves a report through cache when one is configured, otherwise calls load directly.
func fetchReport[T any](ctx context.Context, cache portssvc.ReportCache, businessID, report string, params []string, load func(ctx context.Context) (T, error)) (T, error) {
	if cache == nil {
		return load(ctx)
	}
	var out T
	err := cache.Fetch(ctx, businessID, report, params, &out, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	return out, err
}

// rangeParams renders a date range for use in a cache key. Open sides render as "-".
func rangeParams(r domain.DateRange) []string {
	return []string{keyDate(r.Start), keyDate(r.End)}
}

func keyDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
