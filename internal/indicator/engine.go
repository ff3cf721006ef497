package indicator

import (
	"fmt"

	"github.com/jeett25/stock-ai-assistant/internal/model"
)

// MinBars is the minimum series length for a snapshot. Below this the
// longer-window indicators would all be missing and the few remaining
// values are too noisy to act on, so the engine declines to compute.
const MinBars = 50

// Default indicator parameters, matching common charting conventions.
const (
	rsiPeriod        = 14
	macdFastSpan     = 12
	macdSlowSpan     = 26
	macdSignalSpan   = 9
	bollingerPeriod  = 20
	bollingerK       = 2.0
	volatilityPeriod = 20
	levelsLookback   = 20
)

// Engine transforms an ordered daily price series into the latest-bar
// IndicatorSnapshot. It holds no state between calls: every invocation
// allocates fresh accumulators, so concurrent use across tickers needs
// no coordination.
type Engine struct{}

// NewEngine creates an indicator engine.
func NewEngine() *Engine {
	return &Engine{}
}

// ComputeSnapshot computes all indicators for the final bar of the
// series. Bars must be strictly ascending by date, belong to the given
// ticker, and carry positive prices; violations return a validation
// error before any computation.
//
// Fewer than MinBars bars returns (nil, nil): insufficient history is
// expected operating data, not an error. Individual snapshot fields are
// nil until their own windows fill.
func (e *Engine) ComputeSnapshot(ticker string, bars []model.PriceBar) (*model.IndicatorSnapshot, error) {
	if err := validateBars(ticker, bars); err != nil {
		return nil, err
	}
	if len(bars) < MinBars {
		return nil, nil
	}

	rsi := NewRSI(rsiPeriod)
	macd := NewMACD(macdFastSpan, macdSlowSpan, macdSignalSpan)
	sma20 := NewSMA(20)
	sma50 := NewSMA(50)
	sma200 := NewSMA(200)
	ema12 := NewEMA(12)
	ema26 := NewEMA(26)
	bollinger := NewBollinger(bollingerPeriod, bollingerK)
	volatility := NewVolatility(volatilityPeriod)
	levels := NewLevels(levelsLookback)

	for _, bar := range bars {
		c := bar.Close
		rsi.Update(c)
		macd.Update(c)
		sma20.Update(c)
		sma50.Update(c)
		sma200.Update(c)
		ema12.Update(c)
		ema26.Update(c)
		bollinger.Update(c)
		volatility.Update(c)
		levels.Update(bar)
	}

	last := bars[len(bars)-1]
	snap := &model.IndicatorSnapshot{
		Ticker:     ticker,
		Date:       last.Date,
		ClosePrice: last.Close,
	}

	if v, ok := rsi.Value(); ok {
		snap.RSI = model.Float(v)
	}
	if macd.Ready() {
		line, signal, histogram := macd.Value()
		snap.MACDValue = model.Float(line)
		snap.MACDSignal = model.Float(signal)
		snap.MACDHistogram = model.Float(histogram)
	}
	if sma20.Ready() {
		snap.SMA20 = model.Float(sma20.Value())
	}
	if sma50.Ready() {
		snap.SMA50 = model.Float(sma50.Value())
	}
	if sma200.Ready() {
		snap.SMA200 = model.Float(sma200.Value())
	}
	if ema12.Ready() {
		snap.EMA12 = model.Float(ema12.Value())
	}
	if ema26.Ready() {
		snap.EMA26 = model.Float(ema26.Value())
	}
	if bollinger.Ready() {
		upper, middle, lower := bollinger.Bands()
		snap.BBUpper = model.Float(upper)
		snap.BBMiddle = model.Float(middle)
		snap.BBLower = model.Float(lower)
	}
	if volatility.Ready() {
		snap.Volatility = model.Float(volatility.Value())
	}
	if levels.Ready() {
		support, resistance, priceRange := levels.Value()
		snap.Support = model.Float(support)
		snap.Resistance = model.Float(resistance)
		snap.PriceRange = model.Float(priceRange)
	}

	return snap, nil
}

// validateBars enforces the input contract: non-empty, one ticker,
// strictly ascending dates, positive prices.
func validateBars(ticker string, bars []model.PriceBar) error {
	if len(bars) == 0 {
		return ErrNoBars
	}
	for i, b := range bars {
		if b.Ticker != "" && b.Ticker != ticker {
			return fmt.Errorf("%w: bar %d has ticker %q, want %q", ErrTickerMismatch, i, b.Ticker, ticker)
		}
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return fmt.Errorf("%w: bar %d on %s", ErrNonPositivePrice, i, b.DateKey())
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return fmt.Errorf("%w: bar %d (%s) does not follow bar %d (%s)",
				ErrUnorderedBars, i, b.DateKey(), i-1, bars[i-1].DateKey())
		}
	}
	return nil
}
