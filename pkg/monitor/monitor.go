// Package monitor maintains a time-windowed history of full catalog
// snapshots and answers lookup and structural-diff queries against it.
package monitor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/go-cmp/cmp"

	"github.com/swordfeng/ireina/pkg/httpclient"
	"github.com/swordfeng/ireina/pkg/logging"
	"github.com/swordfeng/ireina/pkg/metrics"
)

const (
	// DefaultPollInterval is how often the catalog is re-captured.
	DefaultPollInterval = time.Hour
	// DefaultRetention is the trailing window snapshots are kept for.
	DefaultRetention = 24 * time.Hour
)

// Config configures a Monitor.
type Config struct {
	APIURL       string
	PollInterval time.Duration
	Retention    time.Duration
}

// snapshot is one full point-in-time capture of the catalog. Immutable
// after creation.
type snapshot struct {
	capturedAt time.Time
	products   map[string]Product
}

// Monitor polls the catalog listing endpoint on a fixed interval and keeps
// the snapshots captured within the retention window. Queries may run
// concurrently with the poll loop; the history lock only ever guards pure
// in-memory work.
type Monitor struct {
	client   *httpclient.Client
	logger   *logging.Logger
	apiURL   string
	interval time.Duration
	window   time.Duration

	mu      sync.Mutex
	history []snapshot // ascending by capturedAt
}

// New creates a monitor. It captures nothing until Run is started.
func New(client *httpclient.Client, logger *logging.Logger, cfg Config) *Monitor {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	window := cfg.Retention
	if window <= 0 {
		window = DefaultRetention
	}
	return &Monitor{
		client:   client,
		logger:   logger,
		apiURL:   cfg.APIURL,
		interval: interval,
		window:   window,
	}
}

// Run polls the catalog until ctx is cancelled. Every failure is logged and
// the loop continues; a broken upstream only leaves the history stale.
func (m *Monitor) Run(ctx context.Context) {
	for {
		m.poll(ctx)
		select {
		case <-ctx.Done():
			return
		case <-time.After(m.interval):
		}
	}
}

// poll captures one snapshot. On failure the history is left untouched.
func (m *Monitor) poll(ctx context.Context) {
	now := time.Now()
	products, err := m.fetchProducts(ctx)
	metrics.RecordCatalogPoll(err)
	if err != nil {
		m.logger.Error("Catalog poll failed", "error", err.Error())
		return
	}

	snap := snapshot{capturedAt: now, products: products}

	m.mu.Lock()
	cutoff := now.Add(-m.window)
	kept := make([]snapshot, 0, len(m.history)+1)
	for _, s := range m.history {
		if !s.capturedAt.Before(cutoff) {
			kept = append(kept, s)
		}
	}
	// The snapshot just captured is always retained, so the history is never
	// empty again after the first successful poll.
	m.history = append(kept, snap)
	depth := len(m.history)
	m.mu.Unlock()

	metrics.RecordCatalogState(len(products), depth)
	m.logger.Info("Catalog snapshot captured", "products", len(products), "history", depth)
}

// fetchProducts retrieves and parses the full catalog listing. Elements
// that fail to parse are dropped individually so schema drift in single
// listings cannot blind the monitor to the rest of the catalog.
func (m *Monitor) fetchProducts(ctx context.Context) (map[string]Product, error) {
	var raw json.RawMessage
	if err := m.client.GetJSON(ctx, m.apiURL+"/products", &raw); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &errBody); err == nil && errBody.Message != "" {
			return nil, fmt.Errorf("catalog: %s", errBody.Message)
		}
		return nil, fmt.Errorf("catalog: %w", ErrNotArray)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	products := make(map[string]Product, len(elems))
	dropped := 0
	for _, el := range elems {
		var p Product
		if err := json.Unmarshal(el, &p); err != nil {
			dropped++
			continue
		}
		products[p.ID] = p
	}
	if dropped > 0 {
		m.logger.Debug("Dropped unparseable catalog entries", "count", dropped)
	}
	return products, nil
}

// Lookup returns the product with id symbol+"-USD" from the newest
// snapshot, or false when absent or nothing has been captured yet.
func (m *Monitor) Lookup(symbol string) (Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.history) == 0 {
		return Product{}, false
	}
	newest := m.history[len(m.history)-1]
	p, ok := newest.products[symbol+"-USD"]
	return p, ok
}

// Diff compares the oldest and newest retained snapshots. It returns false
// when nothing has been captured or the two product maps are structurally
// identical. Otherwise the report embeds the diff plus how long ago each
// end of the comparison window was captured.
func (m *Monitor) Diff() (string, bool) {
	m.mu.Lock()
	if len(m.history) == 0 {
		m.mu.Unlock()
		return "", false
	}
	oldest := m.history[0]
	newest := m.history[len(m.history)-1]
	m.mu.Unlock()

	d := cmp.Diff(oldest.products, newest.products)
	if d == "" {
		return "", false
	}
	return fmt.Sprintf("%s\nUpdated: %s\nComparing to: %s",
		d, humanize.Time(newest.capturedAt), humanize.Time(oldest.capturedAt)), true
}
