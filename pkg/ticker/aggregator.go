package ticker

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/swordfeng/ireina/pkg/config"
	"github.com/swordfeng/ireina/pkg/logging"
	"github.com/swordfeng/ireina/pkg/metrics"
)

// Aggregator combines member sources into one consensus source. It is
// itself a Source, so aggregators can be nested to build multi-tier
// consensus (e.g. a metal price made of two differently-sourced estimates).
type Aggregator struct {
	name    string
	sources []Source
	logger  *logging.Logger
}

var _ Source = (*Aggregator)(nil)

// NewAggregator creates an aggregator over the given member sources.
func NewAggregator(name string, sources []Source, logger *logging.Logger) *Aggregator {
	return &Aggregator{name: name, sources: sources, logger: logger}
}

// Name returns the aggregator name.
func (a *Aggregator) Name() string {
	return a.name
}

// Fetch fans out to every member in parallel, then merges the results:
// independent medians of the reported last and previous prices, member
// errors concatenated in declaration order, and a low-confidence flag
// unless the members answered unanimously or at least three of them
// reported a last price.
func (a *Aggregator) Fetch(ctx context.Context) Sample {
	start := time.Now()

	samples := make([]Sample, len(a.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range a.sources {
		i, src := i, src
		g.Go(func() error {
			samples[i] = src.Fetch(gctx)
			return nil
		})
	}
	_ = g.Wait() // members never return errors

	var lasts, prevs []decimal.Decimal
	var errs []string
	for _, s := range samples {
		if s.LastPrice != nil {
			lasts = append(lasts, *s.LastPrice)
		}
		if s.PrevPrice != nil {
			prevs = append(prevs, *s.PrevPrice)
		}
		errs = append(errs, s.Errors...)
	}

	result := Sample{
		LastPrice: Median(lasts),
		PrevPrice: Median(prevs),
		// Confidence needs either every member answering or a quorum of 3.
		InsufficientData: len(a.sources) == 0 ||
			(len(lasts) < len(a.sources) && len(lasts) < 3),
		Errors: errs,
	}

	metrics.RecordAggregation(a.name, time.Since(start), result.InsufficientData)
	if result.InsufficientData {
		a.logger.Debug("Consensus below quorum",
			"instrument", a.name,
			"responses", len(lasts),
			"members", len(a.sources))
	}
	return result
}

func init() {
	Register("aggregate", func(deps Deps, cfg config.SourceConfig) (Source, error) {
		if len(cfg.Sources) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMemberSources, cfg.Name)
		}
		members := make([]Source, 0, len(cfg.Sources))
		for _, sc := range cfg.Sources {
			src, err := Create(deps, sc)
			if err != nil {
				return nil, err
			}
			members = append(members, src)
		}
		name := cfg.Name
		if name == "" {
			name = "aggregate"
		}
		return NewAggregator(name, members, deps.Logger), nil
	})
}
