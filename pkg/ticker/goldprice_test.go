package ticker

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swordfeng/ireina/pkg/config"
)

func TestGoldpriceSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dbXRates/USD", r.URL.Path)
		fmt.Fprint(w, `{"ts":1718000000,"items":[{"curr":"USD","goldPrice":2412.35,"goldClose":2398.1,"silverPrice":29.1,"silverClose":28.9}]}`)
	}))
	defer srv.Close()

	src, err := NewGoldpriceSource(newTestDeps(), config.SourceConfig{Metal: "Gold", Currency: "USD", APIURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "goldprice", src.Name())

	got := src.Fetch(context.Background())
	assert.False(t, got.InsufficientData)
	require.NotNil(t, got.LastPrice)
	assert.True(t, got.LastPrice.Equal(decimal.NewFromFloat(2412.35)))
	require.NotNil(t, got.PrevPrice)
	assert.True(t, got.PrevPrice.Equal(decimal.NewFromFloat(2398.1)))
}

func TestGoldpriceSource_MissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[{"curr":"USD","silverPrice":29.1}]}`)
	}))
	defer srv.Close()

	src, err := NewGoldpriceSource(newTestDeps(), config.SourceConfig{Metal: "gold", Currency: "USD", APIURL: srv.URL})
	require.NoError(t, err)

	got := src.Fetch(context.Background())
	assert.True(t, got.InsufficientData)
	assert.Nil(t, got.LastPrice)
	require.Len(t, got.Errors, 1)
	assert.Contains(t, got.Errors[0], "goldPrice")
}

func TestGoldpriceSource_NoItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer srv.Close()

	src, err := NewGoldpriceSource(newTestDeps(), config.SourceConfig{Metal: "gold", Currency: "USD", APIURL: srv.URL})
	require.NoError(t, err)

	got := src.Fetch(context.Background())
	assert.True(t, got.InsufficientData)
	require.Len(t, got.Errors, 1)
}

func TestGoldpriceSource_RequiresMetalAndCurrency(t *testing.T) {
	_, err := NewGoldpriceSource(newTestDeps(), config.SourceConfig{Currency: "USD"})
	require.ErrorIs(t, err, ErrMetalRequired)

	_, err = NewGoldpriceSource(newTestDeps(), config.SourceConfig{Metal: "gold"})
	require.ErrorIs(t, err, ErrCurrencyRequired)
}
