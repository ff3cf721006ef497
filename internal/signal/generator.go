// Package signal fuses an indicator snapshot into one discrete trading
// signal with a bounded confidence score and human-readable rationale.
//
// Five independent sub-analyzers (RSI, MACD, moving averages, Bollinger
// position, trend) each produce a signed score; a fixed named weighting
// combines them into a single value in roughly [−1.15, 1.15], which is
// thresholded into STRONG_BUY..STRONG_SELL and clamped into a
// confidence. Missing indicator data degrades sub-scores to neutral, so
// the generator never fails; the worst case is HOLD with confidence 0.
package signal

import (
	"math"
	"time"

	"github.com/jeett25/stock-ai-assistant/internal/model"
)

// Weights assigns each analyzer's contribution by name. They sum to 1.0
// so the weighted score stays comparable to a single analyzer's range.
type Weights struct {
	RSI           float64
	MACD          float64
	MovingAverage float64
	Bollinger     float64
	Trend         float64
}

// DefaultWeights favors MACD slightly; Bollinger position is the
// weakest voter.
var DefaultWeights = Weights{
	RSI:           0.20,
	MACD:          0.25,
	MovingAverage: 0.20,
	Bollinger:     0.15,
	Trend:         0.20,
}

// Fused-score thresholds for the five signal labels.
const (
	strongThreshold = 0.6
	leanThreshold   = 0.2
)

// Generator produces SignalResults from indicator snapshots. It is
// stateless apart from its configuration and safe for concurrent use.
type Generator struct {
	weights Weights
	now     func() time.Time
}

// NewGenerator creates a generator with the default weights.
func NewGenerator() *Generator {
	return &Generator{
		weights: DefaultWeights,
		now:     time.Now,
	}
}

// Generate fuses a snapshot into a signal. A nil snapshot (no data at
// all) short-circuits to HOLD with zero confidence.
func (g *Generator) Generate(snap *model.IndicatorSnapshot) model.SignalResult {
	if snap == nil {
		return model.SignalResult{
			Signal:      model.SignalHold,
			Confidence:  0.0,
			Reasons:     []string{"Insufficient data"},
			GeneratedAt: g.now().UTC(),
		}
	}

	rsi := analyzeRSI(snap)
	macd := analyzeMACD(snap)
	ma := analyzeMovingAverages(snap)
	bb := analyzeBollinger(snap)
	trend := analyzeTrend(snap)

	weighted := g.weights.RSI*rsi.score +
		g.weights.MACD*macd.score +
		g.weights.MovingAverage*ma.score +
		g.weights.Bollinger*bb.score +
		g.weights.Trend*trend.score

	var sig model.Signal
	switch {
	case weighted >= strongThreshold:
		sig = model.SignalStrongBuy
	case weighted >= leanThreshold:
		sig = model.SignalBuy
	case weighted <= -strongThreshold:
		sig = model.SignalStrongSell
	case weighted <= -leanThreshold:
		sig = model.SignalSell
	default:
		sig = model.SignalHold
	}

	confidence := math.Min(math.Abs(weighted), 1.0)
	confidence = math.Round(confidence*100) / 100

	return model.SignalResult{
		Signal:      sig,
		Confidence:  confidence,
		Reasons:     collectReasons(rsi, macd, ma, bb, trend),
		GeneratedAt: g.now().UTC(),
		Indicators:  snap,
	}
}

// collectReasons gathers the rationale of every analyzer that voted
// non-neutral with a meaningful score, preserving analyzer order.
func collectReasons(analyses ...analysis) []string {
	var reasons []string
	for _, a := range analyses {
		if a.direction != model.DirectionNeutral && math.Abs(a.score) > 0.1 {
			reasons = append(reasons, a.reason)
		}
	}
	if len(reasons) == 0 {
		return []string{"No strong signals"}
	}
	return reasons
}
