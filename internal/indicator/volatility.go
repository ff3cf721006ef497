package indicator

// Volatility calculates rolling historical volatility: the sample
// standard deviation of day-over-day percentage returns over the
// trailing window, expressed as a percentage (×100).
//
// Requires period+1 bars (the first bar has no return).
type Volatility struct {
	window    *Window
	prevClose float64
	hasPrev   bool
}

// NewVolatility creates a volatility accumulator with the given period.
func NewVolatility(period int) *Volatility {
	return &Volatility{window: NewWindow(period)}
}

// Update feeds the next close price.
func (v *Volatility) Update(price float64) {
	if v.hasPrev {
		v.window.Push((price - v.prevClose) / v.prevClose)
	}
	v.prevClose = price
	v.hasPrev = true
}

// Ready reports whether a full window of returns has been accumulated.
func (v *Volatility) Ready() bool { return v.window.Full() }

// Value returns the volatility percentage.
func (v *Volatility) Value() float64 {
	return v.window.Std() * 100.0
}
