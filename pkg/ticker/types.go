// Package ticker provides price data sources and median-based consensus
// aggregation over them.
package ticker

import (
	"context"

	"github.com/shopspring/decimal"
)

// Sample is the unit of price information produced by every Source: the
// most recent trade price, the previous (opening) price where the vendor
// reports one, a low-confidence flag, and any error messages collected
// while fetching. A nil price means the value is unknown.
type Sample struct {
	LastPrice        *decimal.Decimal
	PrevPrice        *decimal.Decimal
	InsufficientData bool
	Errors           []string
}

// Clone returns an independent copy of the sample. Samples are immutable
// once returned by a Source; Clone is what makes handing the same cached
// result to multiple callers safe.
func (s Sample) Clone() Sample {
	out := Sample{InsufficientData: s.InsufficientData}
	if s.LastPrice != nil {
		v := *s.LastPrice
		out.LastPrice = &v
	}
	if s.PrevPrice != nil {
		v := *s.PrevPrice
		out.PrevPrice = &v
	}
	if len(s.Errors) > 0 {
		out.Errors = append([]string(nil), s.Errors...)
	}
	return out
}

// Source is a price data source. Fetch never fails: transport, vendor and
// parse errors are captured in the returned Sample's Errors list instead
// of being propagated.
type Source interface {
	Name() string
	Fetch(ctx context.Context) Sample
}
