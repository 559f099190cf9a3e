package ticker

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/swordfeng/ireina/pkg/config"
	"github.com/swordfeng/ireina/pkg/httpclient"
)

const goldpriceBaseURL = "https://data-asg.goldprice.org"

// goldpriceRates is the dbXRates response: one items entry per currency,
// holding float fields named "<metal>Price" and "<metal>Close". The
// endpoint has no explicit error field; missing or non-numeric fields are
// the failure signal.
type goldpriceRates struct {
	Items []map[string]interface{} `json:"items"`
}

type goldpriceQuery struct {
	client   *httpclient.Client
	apiURL   string
	metal    string
	currency string
}

// NewGoldpriceSource creates a cached source for one metal spot price
// (metal "gold" or "silver", currency e.g. "USD").
func NewGoldpriceSource(deps Deps, cfg config.SourceConfig) (Source, error) {
	if cfg.Metal == "" {
		return nil, fmt.Errorf("%w: goldprice", ErrMetalRequired)
	}
	if cfg.Currency == "" {
		return nil, fmt.Errorf("%w: goldprice", ErrCurrencyRequired)
	}
	apiURL := goldpriceBaseURL
	if cfg.APIURL != "" {
		apiURL = cfg.APIURL
	}
	q := &goldpriceQuery{
		client:   deps.Client,
		apiURL:   apiURL,
		metal:    strings.ToLower(cfg.Metal),
		currency: cfg.Currency,
	}
	return newCachedSource("goldprice", deps.TTL, q.run, deps.Logger), nil
}

func (q *goldpriceQuery) run(ctx context.Context) (*decimal.Decimal, *decimal.Decimal, error) {
	url := fmt.Sprintf("%s/dbXRates/%s", q.apiURL, q.currency)

	var resp goldpriceRates
	if err := q.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, nil, fmt.Errorf("goldprice: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, nil, fmt.Errorf("goldprice: %w: no items", ErrInvalidResponse)
	}

	last, err := q.itemField(resp.Items[0], q.metal+"Price")
	if err != nil {
		return nil, nil, err
	}
	prev, err := q.itemField(resp.Items[0], q.metal+"Close")
	if err != nil {
		return nil, nil, err
	}
	return last, prev, nil
}

func (q *goldpriceQuery) itemField(item map[string]interface{}, key string) (*decimal.Decimal, error) {
	v, ok := item[key].(float64)
	if !ok {
		return nil, fmt.Errorf("goldprice: %w: missing %s", ErrInvalidResponse, key)
	}
	d := decimal.NewFromFloat(v)
	return &d, nil
}

func init() {
	Register("goldprice", NewGoldpriceSource)
}
