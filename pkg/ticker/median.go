package ticker

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Median returns the median of values: nil for an empty input, the middle
// element for an odd count, the arithmetic mean of the two middle elements
// for an even count. The input slice is not modified.
func Median(values []decimal.Decimal) *decimal.Decimal {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	n := len(sorted)
	var m decimal.Decimal
	if n%2 == 0 {
		m = sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2))
	} else {
		m = sorted[n/2]
	}
	return &m
}
