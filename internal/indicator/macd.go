package indicator

// MACD calculates the Moving Average Convergence Divergence triad:
//
//	macd      = EMA(close, fast) − EMA(close, slow)
//	signal    = EMA(macd, signalSpan)
//	histogram = macd − signal
//
// All three EMAs are first-value seeded, so the triad is defined from
// the first bar (the early values just carry little information).
type MACD struct {
	fast   *EMA
	slow   *EMA
	signal *EMA
}

// NewMACD creates a MACD accumulator with the given spans
// (conventionally 12, 26, 9).
func NewMACD(fastSpan, slowSpan, signalSpan int) *MACD {
	return &MACD{
		fast:   NewEMA(fastSpan),
		slow:   NewEMA(slowSpan),
		signal: NewEMA(signalSpan),
	}
}

// Update feeds the next close price.
func (m *MACD) Update(price float64) {
	m.fast.Update(price)
	m.slow.Update(price)
	m.signal.Update(m.fast.Value() - m.slow.Value())
}

// Value returns (macd line, signal line, histogram).
// The identity histogram == line − signal holds exactly.
func (m *MACD) Value() (line, signal, histogram float64) {
	line = m.fast.Value() - m.slow.Value()
	signal = m.signal.Value()
	return line, signal, line - signal
}

// Ready reports whether at least one bar has been seen.
func (m *MACD) Ready() bool { return m.signal.Ready() }
