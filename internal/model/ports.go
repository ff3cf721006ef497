package model

import (
	"context"
	"time"
)

// ── Collaborator Port Interfaces ──
// These decouple the analysis pipeline from concrete implementations
// (Yahoo HTTP client, SQLite, Redis). The core indicator and signal
// packages depend only on in-memory data; everything stateful is
// injected through these ports.

// PriceSource fetches daily bars from an external market-data provider.
type PriceSource interface {
	// DailyBars returns up to `days` of the most recent daily bars for a
	// ticker, ascending by date. May return fewer if history is short.
	DailyBars(ctx context.Context, ticker string, days int) ([]PriceBar, error)
}

// PriceStore persists and reads daily bars.
type PriceStore interface {
	// SavePrices upserts bars keyed by (ticker, date). Later fetches
	// overwrite, never duplicate. Returns the number of bars stored.
	SavePrices(ctx context.Context, bars []PriceBar) (int, error)

	// PriceHistory returns the most recent `days` bars for a ticker,
	// ascending by date.
	PriceHistory(ctx context.Context, ticker string, days int) ([]PriceBar, error)

	// TickersWithData lists distinct tickers that have stored bars.
	TickersWithData(ctx context.Context) ([]string, error)
}

// AnalysisRecord is one stored analysis row: the snapshot and signal for
// a (ticker, date) pair. Frequently queried indicators are flattened
// into their own fields; the full snapshot rides along as JSON.
type AnalysisRecord struct {
	Ticker        string             `json:"ticker"`
	Date          time.Time          `json:"date"`
	RSI           *float64           `json:"rsi,omitempty"`
	MACDValue     *float64           `json:"macd_value,omitempty"`
	MACDSignal    *float64           `json:"macd_signal,omitempty"`
	MACDHistogram *float64           `json:"macd_histogram,omitempty"`
	SMA20         *float64           `json:"sma_20,omitempty"`
	SMA50         *float64           `json:"sma_50,omitempty"`
	Signal        Signal             `json:"signal"`
	Confidence    float64            `json:"confidence"`
	Reasons       []string           `json:"reasons"`
	Indicators    *IndicatorSnapshot `json:"indicators,omitempty"`
}

// AnalysisStore persists and reads analysis results.
type AnalysisStore interface {
	// SaveAnalysis upserts one analysis row keyed by (ticker, date).
	SaveAnalysis(ctx context.Context, snap *IndicatorSnapshot, result SignalResult) error

	// LatestAnalysis returns the most recent analysis for a ticker,
	// or nil if none exists.
	LatestAnalysis(ctx context.Context, ticker string) (*AnalysisRecord, error)

	// AnalysisHistory returns up to `days` most recent analyses for a
	// ticker, newest first.
	AnalysisHistory(ctx context.Context, ticker string, days int) ([]AnalysisRecord, error)
}

// AnalysisCache caches the latest signal per ticker for fast reads by
// downstream consumers.
type AnalysisCache interface {
	// SetLatest stores the latest result for a ticker and publishes it.
	SetLatest(ctx context.Context, ticker string, result SignalResult) error

	// Latest returns the cached result, or nil on a cache miss.
	Latest(ctx context.Context, ticker string) (*SignalResult, error)
}
