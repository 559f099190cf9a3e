package config

import "errors"

var (
	// ErrNoInstruments indicates that no instruments are configured.
	ErrNoInstruments = errors.New("no instruments configured")
	// ErrInstrumentSymbolRequired indicates a missing instrument symbol.
	ErrInstrumentSymbolRequired = errors.New("instrument symbol is required")
	// ErrNoSourcesForInstrument indicates an instrument without sources.
	ErrNoSourcesForInstrument = errors.New("instrument has no sources")
	// ErrSourceTypeRequired indicates a source entry without a type.
	ErrSourceTypeRequired = errors.New("source type is required")
	// ErrSymbolRequired indicates a vendor source without a symbol.
	ErrSymbolRequired = errors.New("source symbol is required")
	// ErrMetalRequired indicates a metals source without a metal name.
	ErrMetalRequired = errors.New("source metal is required")
	// ErrCurrencyRequired indicates a metals source without a currency.
	ErrCurrencyRequired = errors.New("source currency is required")
	// ErrAggregateNeedsSources indicates an aggregate without members.
	ErrAggregateNeedsSources = errors.New("aggregate source needs at least one member")
	// ErrMonitorURLRequired indicates an enabled monitor without an endpoint.
	ErrMonitorURLRequired = errors.New("monitor api_url is required when monitor is enabled")
	// ErrNonPositiveInterval indicates a zero or negative interval.
	ErrNonPositiveInterval = errors.New("interval must be positive")
)
