package model

import "time"

// PriceBar represents one calendar day's OHLCV record for a ticker.
// Prices are daily closes from the exchange, in the listing currency.
type PriceBar struct {
	Ticker string    `json:"ticker"`
	Date   time.Time `json:"date"` // calendar date, unique per ticker
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// DateKey returns the bar's date formatted as an ISO-8601 calendar date.
// Used as part of the (ticker, date) storage key.
func (b *PriceBar) DateKey() string {
	return b.Date.Format("2006-01-02")
}
