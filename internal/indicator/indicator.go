// Package indicator computes technical indicators over daily price bars.
//
// Each indicator is a small streaming accumulator fed one close (or bar)
// at a time: updates are O(1) amortized using circular buffers or
// recursive smoothing, so a full snapshot over a capped history is a
// single linear pass. The Engine validates the input series and runs
// every indicator in one sweep, emitting per-field values only once each
// indicator's own window has filled.
package indicator

import (
	"errors"
)

// Input-contract violations. These indicate a caller bug, not a
// data-quality edge case, and are rejected before any computation.
var (
	ErrNoBars           = errors.New("no price bars supplied")
	ErrUnorderedBars    = errors.New("price bars must be in strictly ascending date order")
	ErrNonPositivePrice = errors.New("price bars must have positive prices")
	ErrTickerMismatch   = errors.New("price bar ticker does not match requested ticker")
)
