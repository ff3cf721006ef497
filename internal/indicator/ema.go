package indicator

// EMA calculates an Exponential Moving Average with smoothing factor
// α = 2/(span+1), seeded from the first value with no bias adjustment:
//
//	ema[0] = x[0]
//	ema[t] = x[t]·α + ema[t−1]·(1−α)
//
// This matches the recursive form used by the upstream price pipeline,
// so the EMA is defined from the very first bar onward.
type EMA struct {
	span    int
	alpha   float64
	current float64
	seeded  bool
}

// NewEMA creates an EMA accumulator with the given span.
func NewEMA(span int) *EMA {
	return &EMA{
		span:  span,
		alpha: 2.0 / float64(span+1),
	}
}

// Update feeds the next value.
func (e *EMA) Update(value float64) {
	if !e.seeded {
		e.current = value
		e.seeded = true
		return
	}
	e.current = value*e.alpha + e.current*(1-e.alpha)
}

// Value returns the current smoothed value.
func (e *EMA) Value() float64 { return e.current }

// Ready reports whether at least one value has been seen.
func (e *EMA) Ready() bool { return e.seeded }
