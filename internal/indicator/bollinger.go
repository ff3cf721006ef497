package indicator

// Bollinger calculates Bollinger Bands over a rolling window of closes:
// middle = SMA(period), half-width = k × sample standard deviation.
type Bollinger struct {
	window *Window
	k      float64
}

// NewBollinger creates a Bollinger accumulator (conventionally period
// 20, k 2.0).
func NewBollinger(period int, k float64) *Bollinger {
	return &Bollinger{
		window: NewWindow(period),
		k:      k,
	}
}

// Update feeds the next close price.
func (b *Bollinger) Update(price float64) {
	b.window.Push(price)
}

// Ready reports whether a full window has been accumulated.
func (b *Bollinger) Ready() bool { return b.window.Full() }

// Bands returns (upper, middle, lower). In a flat window the standard
// deviation is zero and all three bands collapse onto the middle.
func (b *Bollinger) Bands() (upper, middle, lower float64) {
	middle = b.window.Mean()
	halfWidth := b.k * b.window.Std()
	return middle + halfWidth, middle, middle - halfWidth
}
