package ticker

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/swordfeng/ireina/pkg/logging"
	"github.com/swordfeng/ireina/pkg/metrics"
)

// DefaultTTL is how long a successful vendor result stays fresh.
const DefaultTTL = 5 * time.Second

// queryFunc runs one vendor request and returns the parsed prices. prev may
// be nil when the vendor does not report an opening price; last may be nil
// only when the vendor legitimately has no data (not an error).
type queryFunc func(ctx context.Context) (last, prev *decimal.Decimal, err error)

// CachedSource wraps a vendor query with a single-slot TTL cache. The mutex
// is held across the TTL check and the vendor query itself, so concurrent
// callers within a TTL window serialize behind one in-flight request and all
// receive the same result. At most one upstream call per source per TTL
// period, regardless of concurrent demand.
type CachedSource struct {
	name   string
	ttl    time.Duration
	query  queryFunc
	logger *logging.Logger

	mu     sync.Mutex
	has    bool
	at     time.Time
	cached Sample
}

var _ Source = (*CachedSource)(nil)

func newCachedSource(name string, ttl time.Duration, query queryFunc, logger *logging.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedSource{name: name, ttl: ttl, query: query, logger: logger}
}

// Name returns the source name.
func (s *CachedSource) Name() string {
	return s.name
}

// Fetch returns the cached sample when fresh, otherwise performs the vendor
// query while still holding the cache slot. A failed query leaves the
// previous successful result in place; the next caller retries immediately
// (failures are never cached).
func (s *CachedSource) Fetch(ctx context.Context) Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.has && time.Since(s.at) < s.ttl {
		metrics.RecordCacheHit(s.name)
		return s.cached.Clone()
	}

	last, prev, err := s.query(ctx)
	metrics.RecordVendorFetch(s.name, err)
	if err != nil {
		s.logger.Warn("Vendor fetch failed", "source", s.name, "error", err.Error())
		return Sample{InsufficientData: true, Errors: []string{err.Error()}}
	}

	sample := Sample{
		LastPrice:        last,
		PrevPrice:        prev,
		InsufficientData: last == nil,
	}
	s.cached = sample.Clone()
	s.at = time.Now()
	s.has = true
	return sample
}
