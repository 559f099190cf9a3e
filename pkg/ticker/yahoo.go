package ticker

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/swordfeng/ireina/pkg/config"
	"github.com/swordfeng/ireina/pkg/httpclient"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// yahooChart is the chart API response for a 5-day daily range. Close and
// adjusted close arrive as parallel arrays in ascending time order, with
// null entries for days without data (market closed).
type yahooChart struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				Adjclose []struct {
					Adjclose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooQuery struct {
	client *httpclient.Client
	apiURL string
	symbol string
}

// NewYahooSource creates a cached source for one Yahoo Finance symbol
// (e.g. "GC=F"). Unlike the exchange sources it may legitimately report
// no data at all: an empty range is success with unknown prices, and a
// single data point is success without a previous price.
func NewYahooSource(deps Deps, cfg config.SourceConfig) (Source, error) {
	if cfg.Symbol == "" {
		return nil, fmt.Errorf("%w: yahoo", ErrSymbolRequired)
	}
	apiURL := yahooBaseURL
	if cfg.APIURL != "" {
		apiURL = cfg.APIURL
	}
	q := &yahooQuery{client: deps.Client, apiURL: apiURL, symbol: cfg.Symbol}
	return newCachedSource("yahoo", deps.TTL, q.run, deps.Logger), nil
}

func (q *yahooQuery) run(ctx context.Context) (*decimal.Decimal, *decimal.Decimal, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=5d&interval=1d", q.apiURL, q.symbol)

	var resp yahooChart
	if err := q.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, nil, fmt.Errorf("yahoo: %w", err)
	}
	if resp.Chart.Error != nil {
		return nil, nil, fmt.Errorf("yahoo: %s: %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, nil, nil // no quotes for the range: market data unavailable
	}

	ind := resp.Chart.Result[0].Indicators
	if len(ind.Quote) == 0 {
		return nil, nil, fmt.Errorf("yahoo: %w: missing quote block", ErrInvalidResponse)
	}

	// Indices of days that actually have a close, ascending by time.
	var days []int
	for i, c := range ind.Quote[0].Close {
		if c != nil {
			days = append(days, i)
		}
	}
	if len(days) == 0 {
		return nil, nil, nil
	}

	lastIdx := days[len(days)-1]
	last := decimal.NewFromFloat(*ind.Quote[0].Close[lastIdx])

	// Previous price is the adjusted close of the prior trading day, when
	// there is one. A zero adjusted close counts as absent.
	var prev *decimal.Decimal
	if len(days) >= 2 && len(ind.Adjclose) > 0 {
		prevIdx := days[len(days)-2]
		adj := ind.Adjclose[0].Adjclose
		if prevIdx < len(adj) && adj[prevIdx] != nil && *adj[prevIdx] != 0 {
			p := decimal.NewFromFloat(*adj[prevIdx])
			prev = &p
		}
	}
	return &last, prev, nil
}

func init() {
	Register("yahoo", NewYahooSource)
}
