package model

import "time"

// Signal is the final trading recommendation derived from indicators.
type Signal string

const (
	SignalStrongBuy  Signal = "STRONG_BUY"
	SignalBuy        Signal = "BUY"
	SignalHold       Signal = "HOLD"
	SignalSell       Signal = "SELL"
	SignalStrongSell Signal = "STRONG_SELL"
)

// Direction is the lean of a single sub-analyzer.
type Direction string

const (
	DirectionBuy     Direction = "BUY"
	DirectionSell    Direction = "SELL"
	DirectionNeutral Direction = "NEUTRAL"
)

// SignalResult is the fused output of the signal generator for one snapshot.
// Confidence is the clamped magnitude of the weighted analyzer score,
// in [0, 1]. It is not a statistical probability.
type SignalResult struct {
	Signal      Signal             `json:"signal"`
	Confidence  float64            `json:"confidence"`
	Reasons     []string           `json:"reasons"`
	GeneratedAt time.Time          `json:"generated_at"`
	Indicators  *IndicatorSnapshot `json:"indicators_used,omitempty"`
}
