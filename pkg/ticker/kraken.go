package ticker

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/swordfeng/ireina/pkg/config"
	"github.com/swordfeng/ireina/pkg/httpclient"
)

const krakenBaseURL = "https://api.kraken.com"

// krakenTicker is the public Ticker response. Kraken reports errors as a
// string array; result is keyed by the requested pair name, with the last
// trade closed as c[0]. No opening price is exposed here.
type krakenTicker struct {
	Error  []string `json:"error"`
	Result map[string]struct {
		C []string `json:"c"`
	} `json:"result"`
}

type krakenQuery struct {
	client *httpclient.Client
	apiURL string
	symbol string
}

// NewKrakenSource creates a cached source for one Kraken pair
// (e.g. "XXBTZUSD").
func NewKrakenSource(deps Deps, cfg config.SourceConfig) (Source, error) {
	if cfg.Symbol == "" {
		return nil, fmt.Errorf("%w: kraken", ErrSymbolRequired)
	}
	apiURL := krakenBaseURL
	if cfg.APIURL != "" {
		apiURL = cfg.APIURL
	}
	q := &krakenQuery{client: deps.Client, apiURL: apiURL, symbol: cfg.Symbol}
	return newCachedSource("kraken", deps.TTL, q.run, deps.Logger), nil
}

func (q *krakenQuery) run(ctx context.Context) (*decimal.Decimal, *decimal.Decimal, error) {
	url := fmt.Sprintf("%s/0/public/Ticker?pair=%s", q.apiURL, q.symbol)

	var resp krakenTicker
	if err := q.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, nil, fmt.Errorf("kraken: %w", err)
	}
	if len(resp.Error) > 0 {
		return nil, nil, fmt.Errorf("kraken: %s", resp.Error[0])
	}

	pair, ok := resp.Result[q.symbol]
	if !ok || len(pair.C) == 0 {
		return nil, nil, fmt.Errorf("kraken: %w: missing result for %s", ErrInvalidResponse, q.symbol)
	}
	last, err := decimal.NewFromString(pair.C[0])
	if err != nil {
		return nil, nil, fmt.Errorf("kraken: parse close %q: %w", pair.C[0], err)
	}
	return &last, nil, nil
}

func init() {
	Register("kraken", NewKrakenSource)
}
