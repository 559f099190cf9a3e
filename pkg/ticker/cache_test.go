package ticker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swordfeng/ireina/pkg/logging"
)

func TestCachedSource_CoalescesConcurrentFetches(t *testing.T) {
	var calls int32
	query := func(_ context.Context) (*decimal.Decimal, *decimal.Decimal, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(50 * time.Millisecond) // keep the fetch in flight
		d := decimal.NewFromInt(42)
		return &d, nil, nil
	}
	src := newCachedSource("test", time.Second, query, logging.NewNoopLogger())

	results := make([]Sample, 4)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = src.Fetch(context.Background())
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls),
		"concurrent callers within the TTL must share one upstream request")
	for _, r := range results {
		require.NotNil(t, r.LastPrice)
		assert.True(t, r.LastPrice.Equal(decimal.NewFromInt(42)))
		assert.False(t, r.InsufficientData)
		assert.Empty(t, r.Errors)
	}
}

func TestCachedSource_ServesFromCacheWithinTTL(t *testing.T) {
	var calls int32
	query := func(_ context.Context) (*decimal.Decimal, *decimal.Decimal, error) {
		atomic.AddInt32(&calls, 1)
		d := decimal.NewFromInt(7)
		return &d, nil, nil
	}
	src := newCachedSource("test", time.Minute, query, logging.NewNoopLogger())

	first := src.Fetch(context.Background())
	second := src.Fetch(context.Background())

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	require.NotNil(t, first.LastPrice)
	require.NotNil(t, second.LastPrice)
	assert.True(t, first.LastPrice.Equal(*second.LastPrice))
}

func TestCachedSource_RefetchesAfterTTL(t *testing.T) {
	var calls int32
	query := func(_ context.Context) (*decimal.Decimal, *decimal.Decimal, error) {
		d := decimal.NewFromInt(int64(atomic.AddInt32(&calls, 1)))
		return &d, nil, nil
	}
	src := newCachedSource("test", 10*time.Millisecond, query, logging.NewNoopLogger())

	src.Fetch(context.Background())
	time.Sleep(20 * time.Millisecond)
	got := src.Fetch(context.Background())

	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	require.NotNil(t, got.LastPrice)
	assert.True(t, got.LastPrice.Equal(decimal.NewFromInt(2)))
}

func TestCachedSource_FailureIsNotCached(t *testing.T) {
	var calls int32
	query := func(_ context.Context) (*decimal.Decimal, *decimal.Decimal, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, nil, errors.New("connection refused")
		}
		d := decimal.NewFromInt(9)
		return &d, nil, nil
	}
	src := newCachedSource("test", time.Minute, query, logging.NewNoopLogger())

	first := src.Fetch(context.Background())
	assert.True(t, first.InsufficientData)
	assert.Nil(t, first.LastPrice)
	assert.Equal(t, []string{"connection refused"}, first.Errors)

	// The failure must not suppress an immediate retry.
	second := src.Fetch(context.Background())
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	require.NotNil(t, second.LastPrice)
	assert.True(t, second.LastPrice.Equal(decimal.NewFromInt(9)))
	assert.False(t, second.InsufficientData)
}

func TestCachedSource_SuccessWithoutDataIsInsufficient(t *testing.T) {
	// A finance-quote vendor can legitimately have nothing for the range.
	query := func(_ context.Context) (*decimal.Decimal, *decimal.Decimal, error) {
		return nil, nil, nil
	}
	src := newCachedSource("test", time.Minute, query, logging.NewNoopLogger())

	got := src.Fetch(context.Background())
	assert.True(t, got.InsufficientData)
	assert.Nil(t, got.LastPrice)
	assert.Empty(t, got.Errors)
}

func TestCachedSource_ReturnsIndependentCopies(t *testing.T) {
	query := func(_ context.Context) (*decimal.Decimal, *decimal.Decimal, error) {
		d := decimal.NewFromInt(5)
		return &d, nil, nil
	}
	src := newCachedSource("test", time.Minute, query, logging.NewNoopLogger())

	first := src.Fetch(context.Background())
	*first.LastPrice = decimal.NewFromInt(999)

	second := src.Fetch(context.Background())
	require.NotNil(t, second.LastPrice)
	assert.True(t, second.LastPrice.Equal(decimal.NewFromInt(5)))
}
