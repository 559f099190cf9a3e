package ticker

import "errors"

var (
	// ErrUnknownSourceType indicates a source type with no registered factory.
	ErrUnknownSourceType = errors.New("unknown source type")
	// ErrSymbolRequired indicates a vendor source configured without a symbol.
	ErrSymbolRequired = errors.New("source symbol is required")
	// ErrMetalRequired indicates a metals source configured without a metal.
	ErrMetalRequired = errors.New("source metal is required")
	// ErrCurrencyRequired indicates a metals source configured without a currency.
	ErrCurrencyRequired = errors.New("source currency is required")
	// ErrNoMemberSources indicates an aggregate configured without members.
	ErrNoMemberSources = errors.New("aggregate has no member sources")
	// ErrInvalidResponse indicates a response missing an expected field.
	ErrInvalidResponse = errors.New("invalid response")
)
