package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taxTotals struct {
	Sales decimal.Decimal `json:"sales"`
	Count int             `json:"count"`
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) ObserveCache(_, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[result]++
}

func (r *countingRecorder) get(result string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[result]
}

func setupCache(t *testing.T) (*ReportCache, *miniredis.Miniredis, *countingRecorder) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	rec := &countingRecorder{}
	return NewReportCache(client, time.Minute, rec), mr, rec
}

func countingLoader(calls *int32, sales string) func(context.Context) (any, error) {
	return func(context.Context) (any, error) {
		n := atomic.AddInt32(calls, 1)
		return taxTotals{Sales: decimal.RequireFromString(sales), Count: int(n)}, nil
	}
}

func TestFetchCachesUntilInvalidated(t *testing.T) {
	c, _, rec := setupCache(t)
	ctx := context.Background()
	var calls int32

	var first, second taxTotals
	require.NoError(t, c.Fetch(ctx, "biz-1", "taxSummary", []string{"2024-05-01", "2024-05-31"}, &first, countingLoader(&calls, "90.00")))
	require.NoError(t, c.Fetch(ctx, "biz-1", "taxSummary", []string{"2024-05-01", "2024-05-31"}, &second, countingLoader(&calls, "1")))

	assert.Equal(t, int32(1), calls)
	assert.Equal(t, first, second)
	assert.True(t, second.Sales.Equal(decimal.RequireFromString("90")))
	assert.Equal(t, 1, rec.get("hit"))
	assert.Equal(t, 1, rec.get("miss"))

	require.NoError(t, c.Invalidate(ctx, "biz-1"))

	var third taxTotals
	require.NoError(t, c.Fetch(ctx, "biz-1", "taxSummary", []string{"2024-05-01", "2024-05-31"}, &third, countingLoader(&calls, "100")))
	assert.Equal(t, int32(2), calls)
	assert.True(t, third.Sales.Equal(decimal.NewFromInt(100)))
}

func TestInvalidateAlsoBumpsAllBusinessesView(t *testing.T) {
	c, mr, _ := setupCache(t)
	ctx := context.Background()
	var calls int32

	var out taxTotals
	require.NoError(t, c.Fetch(ctx, "", "dashboard", nil, &out, countingLoader(&calls, "1")))
	require.NoError(t, c.Fetch(ctx, "biz-2", "dashboard", nil, &out, countingLoader(&calls, "1")))
	require.Equal(t, int32(2), calls)

	require.NoError(t, c.Invalidate(ctx, "biz-1"))

	v, err := mr.Get(versionKey("all"))
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	// "" and "all" share a scope; biz-2 is untouched.
	require.NoError(t, c.Fetch(ctx, "all", "dashboard", nil, &out, countingLoader(&calls, "1")))
	require.NoError(t, c.Fetch(ctx, "biz-2", "dashboard", nil, &out, countingLoader(&calls, "1")))
	assert.Equal(t, int32(3), calls)
}

func TestFetchDegradesWhenRedisIsDown(t *testing.T) {
	c, mr, rec := setupCache(t)
	mr.Close()
	var calls int32

	var out taxTotals
	require.NoError(t, c.Fetch(context.Background(), "biz-1", "ledger", nil, &out, countingLoader(&calls, "5")))
	assert.True(t, out.Sales.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 1, rec.get("error"))

	assert.Error(t, c.Invalidate(context.Background(), "biz-1"))
}

func TestFetchPropagatesLoaderError(t *testing.T) {
	c, mr, _ := setupCache(t)
	boom := errors.New("boom")

	var out taxTotals
	err := c.Fetch(context.Background(), "biz-1", "ledger", nil, &out, func(context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, mr.Keys())
}

func TestFetchOverwritesUndecodableEntry(t *testing.T) {
	c, mr, _ := setupCache(t)
	ctx := context.Background()
	key, err := c.buildKey(ctx, "biz-1", "ledger", []string{"x"})
	require.NoError(t, err)
	require.NoError(t, mr.Set(key, "{not json"))
	var calls int32

	var out taxTotals
	require.NoError(t, c.Fetch(ctx, "biz-1", "ledger", []string{"x"}, &out, countingLoader(&calls, "7")))
	assert.Equal(t, int32(1), calls)

	raw, err := mr.Get(key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sales":"7","count":1}`, raw)
}

func TestConcurrentMissesShareOneLoad(t *testing.T) {
	c, _, _ := setupCache(t)
	ctx := context.Background()
	var calls int32
	release := make(chan struct{})

	loader := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return taxTotals{Count: 1}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var out taxTotals
			assert.NoError(t, c.Fetch(ctx, "biz-1", "ledger", nil, &out, loader))
		}()
	}
	time.Sleep(200 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNilCacheLoadsDirectly(t *testing.T) {
	var c *ReportCache
	var calls int32
	var out taxTotals
	require.NoError(t, c.Fetch(context.Background(), "biz-1", "ledger", nil, &out, countingLoader(&calls, "3")))
	assert.Equal(t, 1, out.Count)
	assert.NoError(t, c.Invalidate(context.Background(), "biz-1"))
}

func TestCanceledCallerDoesNotAbortSharedLoad(t *testing.T) {
	c, mr, _ := setupCache(t)
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	var loaderCtxErr atomic.Value
	loader := func(loadCtx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		loaderCtxErr.Store(fmt.Sprint(loadCtx.Err()))
		return taxTotals{Sales: decimal.NewFromInt(90), Count: 1}, nil
	}

	done := make(chan error, 1)
	go func() {
		var out taxTotals
		done <- c.Fetch(ctx, "biz-1", "taxSummary", nil, &out, loader)
	}()

	<-started
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled, "the caller that gave up sees its own cancellation")
	close(release)

	// The detached load still finishes and stores its result.
	assert.Eventually(t, func() bool { return len(mr.Keys()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "<nil>", loaderCtxErr.Load())

	var out taxTotals
	require.NoError(t, c.Fetch(context.Background(), "biz-1", "taxSummary", nil, &out, countingLoader(&calls, "1")))
	assert.Equal(t, int32(1), calls, "served from the stored result")
	assert.True(t, out.Sales.Equal(decimal.NewFromInt(90)))
}
