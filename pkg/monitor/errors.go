package monitor

import "errors"

var (
	// ErrNotArray indicates a catalog response whose root is not a JSON array.
	ErrNotArray = errors.New("catalog response is not an array")
)
