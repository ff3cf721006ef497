package indicator

// SMA calculates a Simple Moving Average over a rolling window of closes.
// Uses a preallocated circular buffer for O(1) updates.
type SMA struct {
	period  int
	buf     []float64
	idx     int
	count   int
	sum     float64
	current float64
}

// NewSMA creates an SMA accumulator with the given period.
func NewSMA(period int) *SMA {
	return &SMA{
		period: period,
		buf:    make([]float64, period),
	}
}

// Update feeds the next close price.
func (s *SMA) Update(price float64) {
	if s.count >= s.period {
		// Subtract the oldest value being overwritten
		s.sum -= s.buf[s.idx]
	}

	s.buf[s.idx] = price
	s.sum += price
	s.idx = (s.idx + 1) % s.period
	s.count++

	if s.count >= s.period {
		s.current = s.sum / float64(s.period)
	}
}

// Value returns the current average. Meaningless until Ready.
func (s *SMA) Value() float64 { return s.current }

// Ready reports whether a full window has been accumulated.
func (s *SMA) Ready() bool { return s.count >= s.period }
