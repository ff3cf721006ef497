package indicator

import "github.com/jeett25/stock-ai-assistant/internal/model"

// Levels tracks support and resistance over a trailing lookback:
// support is the lowest low, resistance the highest high.
//
// Unlike the windowed indicators, levels are meaningful from the first
// bar; a short series simply uses the bars it has.
type Levels struct {
	highs *Window
	lows  *Window
}

// NewLevels creates a support/resistance tracker with the given lookback.
func NewLevels(lookback int) *Levels {
	return &Levels{
		highs: NewWindow(lookback),
		lows:  NewWindow(lookback),
	}
}

// Update feeds the next bar.
func (l *Levels) Update(bar model.PriceBar) {
	l.highs.Push(bar.High)
	l.lows.Push(bar.Low)
}

// Ready reports whether any bars have been seen.
func (l *Levels) Ready() bool { return l.lows.Len() > 0 }

// Value returns (support, resistance, range).
func (l *Levels) Value() (support, resistance, priceRange float64) {
	support = l.lows.Min()
	resistance = l.highs.Max()
	return support, resistance, resistance - support
}
