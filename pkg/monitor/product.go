package monitor

import (
	"encoding/json"
	"fmt"
)

// Product is one catalog listing, keyed by its "BASE-QUOTE" id. Fields the
// vendor adds later are preserved verbatim in Extra rather than dropped, so
// schema additions show up in diffs instead of silently disappearing.
type Product struct {
	ID            string
	BaseCurrency  string
	QuoteCurrency string
	DisplayName   string
	Extra         map[string]interface{}
}

// UnmarshalJSON requires the four named fields as strings and keeps every
// other field in Extra.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for _, key := range []string{"id", "base_currency", "quote_currency", "display_name"} {
		s, ok := raw[key].(string)
		if !ok {
			return fmt.Errorf("product: missing or non-string %s", key)
		}
		switch key {
		case "id":
			p.ID = s
		case "base_currency":
			p.BaseCurrency = s
		case "quote_currency":
			p.QuoteCurrency = s
		case "display_name":
			p.DisplayName = s
		}
		delete(raw, key)
	}
	p.Extra = raw
	return nil
}

// MarshalJSON flattens Extra back alongside the named fields.
func (p Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Extra)+4)
	for k, v := range p.Extra {
		out[k] = v
	}
	out["id"] = p.ID
	out["base_currency"] = p.BaseCurrency
	out["quote_currency"] = p.QuoteCurrency
	out["display_name"] = p.DisplayName
	return json.Marshal(out)
}
