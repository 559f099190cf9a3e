package ticker

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/swordfeng/ireina/pkg/config"
	"github.com/swordfeng/ireina/pkg/httpclient"
)

const binanceBaseURL = "https://api-gcp.binance.com"

// binanceTicker is the subset of the 24hr MINI ticker response we parse.
// A non-empty msg field is Binance's error signal.
type binanceTicker struct {
	Msg       string `json:"msg"`
	LastPrice string `json:"lastPrice"`
	OpenPrice string `json:"openPrice"`
}

type binanceQuery struct {
	client *httpclient.Client
	apiURL string
	symbol string
}

// NewBinanceSource creates a cached source for one Binance trading pair
// (e.g. "BTCUSDT").
func NewBinanceSource(deps Deps, cfg config.SourceConfig) (Source, error) {
	if cfg.Symbol == "" {
		return nil, fmt.Errorf("%w: binance", ErrSymbolRequired)
	}
	apiURL := binanceBaseURL
	if cfg.APIURL != "" {
		apiURL = cfg.APIURL
	}
	q := &binanceQuery{client: deps.Client, apiURL: apiURL, symbol: cfg.Symbol}
	return newCachedSource("binance", deps.TTL, q.run, deps.Logger), nil
}

func (q *binanceQuery) run(ctx context.Context) (*decimal.Decimal, *decimal.Decimal, error) {
	url := fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s&type=MINI", q.apiURL, q.symbol)

	var resp binanceTicker
	if err := q.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, nil, fmt.Errorf("binance: %w", err)
	}
	if resp.Msg != "" {
		return nil, nil, fmt.Errorf("binance: %s", resp.Msg)
	}

	last, err := decimal.NewFromString(resp.LastPrice)
	if err != nil {
		return nil, nil, fmt.Errorf("binance: parse lastPrice %q: %w", resp.LastPrice, err)
	}
	prev, err := decimal.NewFromString(resp.OpenPrice)
	if err != nil {
		return nil, nil, fmt.Errorf("binance: parse openPrice %q: %w", resp.OpenPrice, err)
	}
	return &last, &prev, nil
}

func init() {
	Register("binance", NewBinanceSource)
}
