package model

import "time"

// IndicatorSnapshot holds all technical indicators computed for a ticker
// as of its most recent available bar.
//
// Indicator fields are pointers: a nil field means the underlying rolling
// window had not filled yet when the snapshot was taken. Fields fill
// independently: a short series can have sma_20 while sma_200 is still nil.
type IndicatorSnapshot struct {
	Ticker     string    `json:"ticker"`
	Date       time.Time `json:"date"`
	ClosePrice float64   `json:"close_price"`

	// Momentum
	RSI *float64 `json:"rsi,omitempty"`

	// MACD triad (histogram = value - signal)
	MACDValue     *float64 `json:"macd_value,omitempty"`
	MACDSignal    *float64 `json:"macd_signal,omitempty"`
	MACDHistogram *float64 `json:"macd_histogram,omitempty"`

	// Moving averages
	SMA20  *float64 `json:"sma_20,omitempty"`
	SMA50  *float64 `json:"sma_50,omitempty"`
	SMA200 *float64 `json:"sma_200,omitempty"`
	EMA12  *float64 `json:"ema_12,omitempty"`
	EMA26  *float64 `json:"ema_26,omitempty"`

	// Bollinger bands (middle = 20-period SMA)
	BBUpper  *float64 `json:"bb_upper,omitempty"`
	BBMiddle *float64 `json:"bb_middle,omitempty"`
	BBLower  *float64 `json:"bb_lower,omitempty"`

	// Rolling percentage volatility of daily returns
	Volatility *float64 `json:"volatility,omitempty"`

	// Support/resistance levels over the recent lookback
	Support    *float64 `json:"support,omitempty"`
	Resistance *float64 `json:"resistance,omitempty"`
	PriceRange *float64 `json:"price_range,omitempty"`
}

// Float returns a pointer to v. Helper for building optional indicator fields.
func Float(v float64) *float64 {
	return &v
}
