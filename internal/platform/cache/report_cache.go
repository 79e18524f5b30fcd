package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "bookkeeping:reports"

// sharedLoadTimeout bounds a load that no longer follows any caller's deadline.
const sharedLoadTimeout = 30 * time.Second

// Recorder receives one result per lookup: hit, miss or error.
type Recorder interface {
	ObserveCache(report, result string)
}

// ReportCache memoizes reports in Redis under a per-business generation number.
// Invalidation bumps the generation, so stale keys are never read again and expire by TTL.
type ReportCache struct {
	client   *redis.Client
	ttl      time.Duration
	group    singleflight.Group
	recorder Recorder
}

var _ portssvc.ReportCache = (*ReportCache)(nil)

// New creates a Redis client and checks it answers.
func New(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("platform/cache: ping: %w", err)
	}

	return client, nil
}

// NewReportCache wraps client; a nil recorder disables lookup accounting.
func NewReportCache(client *redis.Client, ttl time.Duration, recorder Recorder) *ReportCache {
	return &ReportCache{client: client, ttl: ttl, recorder: recorder}
}

// Fetch fills dest from cache or from loader. Redis failures are logged and bypassed;
// only loader and decoding errors reach the caller.
func (c *ReportCache) Fetch(ctx context.Context, businessID, report string, params []string, dest any, loader func(ctx context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		return loadInto(ctx, loader, dest)
	}

	key, err := c.buildKey(ctx, businessID, report, params)
	if err != nil {
		c.degrade(ctx, report, "read generation", err)
		return loadInto(ctx, loader, dest)
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(payload, dest); jsonErr == nil {
			c.observe(report, "hit")
			return nil
		}
		// An undecodable entry is treated as missing and overwritten.
	case errors.Is(err, redis.Nil):
	default:
		c.degrade(ctx, report, "get", err)
		return loadInto(ctx, loader, dest)
	}
	c.observe(report, "miss")

	// Identical concurrent misses share one load. It runs detached from the caller that
	// started it, so that caller going away does not fail the others waiting on the key.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()

		value, err := loader(loadCtx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(loadCtx, key, raw, c.ttl).Err(); err != nil {
			c.degrade(loadCtx, report, "set", err)
		}
		return raw, nil
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		return json.Unmarshal(res.Val.([]byte), dest)
	}
}

// Invalidate bumps the generation of businessID and of the all-businesses view.
func (c *ReportCache) Invalidate(ctx context.Context, businessID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	pipe := c.client.TxPipeline()
	for _, scope := range scopesOf(businessID) {
		pipe.Incr(ctx, versionKey(scope))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to bump report cache generation for %q: %w", businessID, err)
	}
	return nil
}

func (c *ReportCache) buildKey(ctx context.Context, businessID, report string, params []string) (string, error) {
	scope := scopeOf(businessID)
	ver, err := c.client.Get(ctx, versionKey(scope)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	// A missing counter reads as generation 0 until the first bump.
	parts := append([]string{keyPrefix, scope, report}, params...)
	return strings.Join(parts, ":") + ":v" + strconv.FormatInt(ver, 10), nil
}

func (c *ReportCache) degrade(ctx context.Context, report, op string, err error) {
	c.observe(report, "error")
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("Report cache unavailable, loading directly",
		slog.String("report", report),
		slog.String("op", op),
		slog.String("error", err.Error()))
}

func (c *ReportCache) observe(report, result string) {
	if c.recorder != nil {
		c.recorder.ObserveCache(report, result)
	}
}

func loadInto(ctx context.Context, loader func(context.Context) (any, error), dest any) error {
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func scopeOf(businessID string) string {
	if domain.AllBusinesses(businessID) {
		return domain.BusinessAll
	}
	return businessID
}

func scopesOf(businessID string) []string {
	scope := scopeOf(businessID)
	if scope == domain.BusinessAll {
		return []string{scope}
	}
	return []string{scope, domain.BusinessAll}
}

func versionKey(scope string) string {
	return keyPrefix + ":" + scope + ":version"
}
