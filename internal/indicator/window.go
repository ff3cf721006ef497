package indicator

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Window is a fixed-size rolling window of float64 values backed by a
// circular buffer. Statistics are computed over whatever has been
// pushed, up to the window size.
type Window struct {
	buf   []float64
	idx   int
	count int
}

// NewWindow creates a rolling window of the given size.
func NewWindow(size int) *Window {
	return &Window{buf: make([]float64, size)}
}

// Push appends a value, evicting the oldest once the window is full.
func (w *Window) Push(v float64) {
	w.buf[w.idx] = v
	w.idx = (w.idx + 1) % len(w.buf)
	w.count++
}

// Full reports whether the window holds a complete set of values.
func (w *Window) Full() bool { return w.count >= len(w.buf) }

// Len returns the number of values currently held.
func (w *Window) Len() int {
	if w.count < len(w.buf) {
		return w.count
	}
	return len(w.buf)
}

// Values returns the held values. Order is unspecified; callers compute
// order-independent statistics over them.
func (w *Window) Values() []float64 {
	return w.buf[:w.Len()]
}

// Mean returns the arithmetic mean of the held values.
func (w *Window) Mean() float64 {
	return stat.Mean(w.Values(), nil)
}

// Std returns the sample standard deviation (n−1 denominator) of the
// held values. Returns 0 for fewer than two values.
func (w *Window) Std() float64 {
	if w.Len() < 2 {
		return 0
	}
	return stat.StdDev(w.Values(), nil)
}

// Min returns the smallest held value.
func (w *Window) Min() float64 {
	return floats.Min(w.Values())
}

// Max returns the largest held value.
func (w *Window) Max() float64 {
	return floats.Max(w.Values())
}
