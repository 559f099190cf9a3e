package ticker

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/swordfeng/ireina/pkg/config"
	"github.com/swordfeng/ireina/pkg/httpclient"
)

const coinbaseBaseURL = "https://api.exchange.coinbase.com"

// coinbaseStats is the 24h product stats response. A non-empty message
// field is Coinbase's error signal (e.g. unknown product).
type coinbaseStats struct {
	Message string `json:"message"`
	Last    string `json:"last"`
	Open    string `json:"open"`
}

type coinbaseQuery struct {
	client *httpclient.Client
	apiURL string
	symbol string
}

// NewCoinbaseSource creates a cached source for one Coinbase product
// (e.g. "BTC-USD").
func NewCoinbaseSource(deps Deps, cfg config.SourceConfig) (Source, error) {
	if cfg.Symbol == "" {
		return nil, fmt.Errorf("%w: coinbase", ErrSymbolRequired)
	}
	apiURL := coinbaseBaseURL
	if cfg.APIURL != "" {
		apiURL = cfg.APIURL
	}
	q := &coinbaseQuery{client: deps.Client, apiURL: apiURL, symbol: cfg.Symbol}
	return newCachedSource("coinbase", deps.TTL, q.run, deps.Logger), nil
}

func (q *coinbaseQuery) run(ctx context.Context) (*decimal.Decimal, *decimal.Decimal, error) {
	url := fmt.Sprintf("%s/products/%s/stats", q.apiURL, q.symbol)

	var resp coinbaseStats
	if err := q.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, nil, fmt.Errorf("coinbase: %w", err)
	}
	if resp.Message != "" {
		return nil, nil, fmt.Errorf("coinbase: %s", resp.Message)
	}

	last, err := decimal.NewFromString(resp.Last)
	if err != nil {
		return nil, nil, fmt.Errorf("coinbase: parse last %q: %w", resp.Last, err)
	}
	prev, err := decimal.NewFromString(resp.Open)
	if err != nil {
		return nil, nil, fmt.Errorf("coinbase: parse open %q: %w", resp.Open, err)
	}
	return &last, &prev, nil
}

func init() {
	Register("coinbase", NewCoinbaseSource)
}
