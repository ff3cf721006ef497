package signal

import (
	"fmt"
	"math"
	"strings"

	"github.com/jeett25/stock-ai-assistant/internal/model"
)

// analysis is one sub-analyzer's verdict: a direction, a signed score
// in [−1, +1], and a human-readable reason.
type analysis struct {
	direction model.Direction
	score     float64
	reason    string
}

func neutral(reason string) analysis {
	return analysis{direction: model.DirectionNeutral, reason: reason}
}

// analyzeRSI scores momentum from the RSI oscillator. Oversold readings
// lean BUY, overbought readings lean SELL.
func analyzeRSI(snap *model.IndicatorSnapshot) analysis {
	if snap.RSI == nil {
		return neutral("RSI: no data")
	}
	rsi := *snap.RSI

	switch {
	case rsi < 30:
		return analysis{model.DirectionBuy, 0.8, fmt.Sprintf("RSI oversold (%.1f)", rsi)}
	case rsi < 40:
		return analysis{model.DirectionBuy, 0.4, fmt.Sprintf("RSI slightly oversold (%.1f)", rsi)}
	case rsi > 70:
		return analysis{model.DirectionSell, -0.8, fmt.Sprintf("RSI overbought (%.1f)", rsi)}
	case rsi > 60:
		return analysis{model.DirectionSell, -0.4, fmt.Sprintf("RSI slightly overbought (%.1f)", rsi)}
	default:
		return neutral(fmt.Sprintf("RSI neutral (%.1f)", rsi))
	}
}

// analyzeMACD scores the MACD crossover, scaling strength by the
// histogram magnitude (×10, capped at 0.8).
func analyzeMACD(snap *model.IndicatorSnapshot) analysis {
	if snap.MACDValue == nil || snap.MACDSignal == nil || snap.MACDHistogram == nil {
		return neutral("MACD: no data")
	}
	macd, sig, hist := *snap.MACDValue, *snap.MACDSignal, *snap.MACDHistogram

	strength := math.Min(math.Abs(hist)*10, 0.8)
	if macd > sig && hist > 0 {
		return analysis{model.DirectionBuy, strength, fmt.Sprintf("MACD bullish crossover (hist: %.3f)", hist)}
	}
	if macd < sig && hist < 0 {
		return analysis{model.DirectionSell, -strength, fmt.Sprintf("MACD bearish crossover (hist: %.3f)", hist)}
	}
	return neutral("MACD neutral")
}

// analyzeMovingAverages accumulates a score from the price's position
// relative to its moving averages plus the golden/death cross.
// SMA200 is optional and contributes only when present.
func analyzeMovingAverages(snap *model.IndicatorSnapshot) analysis {
	if snap.SMA20 == nil || snap.SMA50 == nil {
		return neutral("MA: insufficient data")
	}
	price := snap.ClosePrice

	var score float64
	var parts []string

	if price > *snap.SMA20 {
		score += 0.3
		parts = append(parts, "above 20-day MA")
	} else {
		score -= 0.3
		parts = append(parts, "below 20-day MA")
	}

	if snap.SMA200 != nil {
		if price > *snap.SMA200 {
			score += 0.3
			parts = append(parts, "above 200-day MA (long-term bullish)")
		} else {
			score -= 0.3
			parts = append(parts, "below 200-day MA (long-term bearish)")
		}

		if *snap.SMA50 > *snap.SMA200 {
			score += 0.4
			parts = append(parts, "golden cross (50>200)")
		} else if *snap.SMA50 < *snap.SMA200 {
			score -= 0.4
			parts = append(parts, "death cross (50<200)")
		}
	}

	reason := "MA: price " + strings.Join(parts, ", ")
	switch {
	case score > 0:
		return analysis{model.DirectionBuy, math.Min(score, 1.0), reason}
	case score < 0:
		return analysis{model.DirectionSell, math.Max(score, -1.0), reason}
	default:
		return neutral(reason)
	}
}

// analyzeBollinger scores the price's position inside the Bollinger
// envelope: near the lower band is oversold, near the upper overbought.
// A zero-width band (flat window) is treated as dead center.
func analyzeBollinger(snap *model.IndicatorSnapshot) analysis {
	if snap.BBUpper == nil || snap.BBMiddle == nil || snap.BBLower == nil {
		return neutral("BB: no data")
	}

	width := *snap.BBUpper - *snap.BBLower
	position := 0.5
	if width > 0 {
		position = (snap.ClosePrice - *snap.BBLower) / width
	}

	switch {
	case position < 0.2:
		return analysis{model.DirectionBuy, 0.6, "BB: near lower band (oversold)"}
	case position > 0.8:
		return analysis{model.DirectionSell, -0.6, "BB: near upper band (overbought)"}
	default:
		return neutral("BB: middle range")
	}
}

// analyzeTrend scores the SMA20/SMA50 trend direction, damped by 0.7 in
// high-volatility conditions where the trend reading is less reliable.
func analyzeTrend(snap *model.IndicatorSnapshot) analysis {
	if snap.SMA20 == nil || snap.SMA50 == nil {
		return neutral("Trend: no data")
	}

	var score float64
	var text string
	switch {
	case *snap.SMA20 > *snap.SMA50:
		score, text = 0.5, "uptrend"
	case *snap.SMA20 < *snap.SMA50:
		score, text = -0.5, "downtrend"
	default:
		score, text = 0.0, "sideways"
	}

	if snap.Volatility != nil && *snap.Volatility > 3.0 {
		score *= 0.7
		text += " (high volatility)"
	}

	reason := "Trend: " + text
	switch {
	case score > 0:
		return analysis{model.DirectionBuy, score, reason}
	case score < 0:
		return analysis{model.DirectionSell, score, reason}
	default:
		return neutral(reason)
	}
}
