package ticker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swordfeng/ireina/pkg/config"
)

func TestCreate_UnknownType(t *testing.T) {
	_, err := Create(newTestDeps(), config.SourceConfig{Type: "carrier-pigeon"})
	require.ErrorIs(t, err, ErrUnknownSourceType)
}

func TestCreate_AllVendorTypesRegistered(t *testing.T) {
	registered := List()
	for _, want := range []string{"binance", "coinbase", "kraken", "goldprice", "yahoo", "aggregate"} {
		assert.Contains(t, registered, want)
	}
}

func TestCreate_NestedAggregate(t *testing.T) {
	cfg := config.SourceConfig{
		Type: "aggregate",
		Name: "gold",
		Sources: []config.SourceConfig{
			{
				Type: "aggregate",
				Name: "gold-estimate",
				Sources: []config.SourceConfig{
					{Type: "goldprice", Metal: "gold", Currency: "USD"},
					{Type: "yahoo", Symbol: "GC=F"},
				},
			},
			{Type: "kraken", Symbol: "XAUZUSD"},
		},
	}

	src, err := Create(newTestDeps(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "gold", src.Name())
	_, ok := src.(*Aggregator)
	assert.True(t, ok)
}

func TestCreate_AggregateRequiresMembers(t *testing.T) {
	_, err := Create(newTestDeps(), config.SourceConfig{Type: "aggregate", Name: "empty"})
	require.ErrorIs(t, err, ErrNoMemberSources)
}

func TestCreate_AggregatePropagatesMemberError(t *testing.T) {
	_, err := Create(newTestDeps(), config.SourceConfig{
		Type:    "aggregate",
		Sources: []config.SourceConfig{{Type: "binance"}}, // missing symbol
	})
	require.ErrorIs(t, err, ErrSymbolRequired)
}
