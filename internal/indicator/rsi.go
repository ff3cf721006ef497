package indicator

// RSI calculates the Relative Strength Index using plain trailing
// averages of gains and losses over the last `period` close-to-close
// deltas (a simple rolling window, not Wilder smoothing):
//
//	RS  = avgGain / avgLoss
//	RSI = 100 − 100/(1+RS)
//
// Requires period+1 bars (the first bar has no delta).
//
// Degenerate windows resolve explicitly instead of propagating NaN:
// avgLoss == 0 with any gain means maximal strength (RSI = 100);
// a window with neither gains nor losses leaves RSI undefined.
type RSI struct {
	period    int
	gains     []float64 // circular, one slot per delta
	losses    []float64
	idx       int
	deltas    int
	gainSum   float64
	lossSum   float64
	prevClose float64
	hasPrev   bool
}

// NewRSI creates an RSI accumulator with the given period (typically 14).
func NewRSI(period int) *RSI {
	return &RSI{
		period: period,
		gains:  make([]float64, period),
		losses: make([]float64, period),
	}
}

// Update feeds the next close price.
func (r *RSI) Update(price float64) {
	if !r.hasPrev {
		r.prevClose = price
		r.hasPrev = true
		return
	}

	delta := price - r.prevClose
	r.prevClose = price

	gain, loss := 0.0, 0.0
	if delta > 0 {
		gain = delta
	} else {
		loss = -delta
	}

	if r.deltas >= r.period {
		r.gainSum -= r.gains[r.idx]
		r.lossSum -= r.losses[r.idx]
	}
	r.gains[r.idx] = gain
	r.losses[r.idx] = loss
	r.gainSum += gain
	r.lossSum += loss
	r.idx = (r.idx + 1) % r.period
	r.deltas++
}

// Ready reports whether a full window of deltas has been accumulated.
func (r *RSI) Ready() bool { return r.deltas >= r.period }

// Value returns the current RSI in [0, 100]. The second return is false
// when the value is undefined: either the window is not full, or the
// window was completely flat (no gains and no losses).
func (r *RSI) Value() (float64, bool) {
	if !r.Ready() {
		return 0, false
	}

	avgGain := r.gainSum / float64(r.period)
	avgLoss := r.lossSum / float64(r.period)

	if avgLoss <= 0 {
		if avgGain <= 0 {
			return 0, false // flat window, RS is 0/0
		}
		return 100.0, true // no losses, maximal strength
	}

	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), true
}
