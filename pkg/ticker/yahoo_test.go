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

func yahooServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/GC=F", r.URL.Path)
		assert.Equal(t, "5d", r.URL.Query().Get("range"))
		fmt.Fprint(w, body)
	}))
}

func TestYahooSource_Fetch(t *testing.T) {
	srv := yahooServer(t, `{"chart":{"result":[{"indicators":{
		"quote":[{"close":[2390.5,2401.2,null,2412.8]}],
		"adjclose":[{"adjclose":[2390.5,2401.2,null,2412.8]}]
	}}],"error":null}}`)
	defer srv.Close()

	src, err := NewYahooSource(newTestDeps(), config.SourceConfig{Symbol: "GC=F", APIURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "yahoo", src.Name())

	got := src.Fetch(context.Background())
	assert.False(t, got.InsufficientData)
	require.NotNil(t, got.LastPrice)
	assert.True(t, got.LastPrice.Equal(decimal.NewFromFloat(2412.8)))
	require.NotNil(t, got.PrevPrice)
	assert.True(t, got.PrevPrice.Equal(decimal.NewFromFloat(2401.2)))
}

func TestYahooSource_SinglePoint(t *testing.T) {
	srv := yahooServer(t, `{"chart":{"result":[{"indicators":{
		"quote":[{"close":[2400.0]}],
		"adjclose":[{"adjclose":[2400.0]}]
	}}],"error":null}}`)
	defer srv.Close()

	src, err := NewYahooSource(newTestDeps(), config.SourceConfig{Symbol: "GC=F", APIURL: srv.URL})
	require.NoError(t, err)

	got := src.Fetch(context.Background())
	assert.False(t, got.InsufficientData)
	require.NotNil(t, got.LastPrice)
	assert.Nil(t, got.PrevPrice)
	assert.Empty(t, got.Errors)
}

func TestYahooSource_EmptyRangeIsNotAnError(t *testing.T) {
	srv := yahooServer(t, `{"chart":{"result":[],"error":null}}`)
	defer srv.Close()

	src, err := NewYahooSource(newTestDeps(), config.SourceConfig{Symbol: "GC=F", APIURL: srv.URL})
	require.NoError(t, err)

	got := src.Fetch(context.Background())
	assert.True(t, got.InsufficientData)
	assert.Nil(t, got.LastPrice)
	assert.Nil(t, got.PrevPrice)
	assert.Empty(t, got.Errors)
}

func TestYahooSource_VendorError(t *testing.T) {
	srv := yahooServer(t, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	defer srv.Close()

	src, err := NewYahooSource(newTestDeps(), config.SourceConfig{Symbol: "GC=F", APIURL: srv.URL})
	require.NoError(t, err)

	got := src.Fetch(context.Background())
	assert.True(t, got.InsufficientData)
	require.Len(t, got.Errors, 1)
	assert.Contains(t, got.Errors[0], "No data found")
}
