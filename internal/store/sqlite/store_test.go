package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jeett25/stock-ai-assistant/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(Config{DBPath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func day(offset int) time.Time {
	return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func testBars(ticker string, n int) []model.PriceBar {
	bars := make([]model.PriceBar, n)
	for i := 0; i < n; i++ {
		c := 100.0 + float64(i)
		bars[i] = model.PriceBar{
			Ticker: ticker,
			Date:   day(i),
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: int64(1000 + i),
		}
	}
	return bars
}

func TestSavePrices_UpsertNoDuplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	bars := testBars("TCS", 5)
	if _, err := store.SavePrices(ctx, bars); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// Re-save the same days with a revised close; rows must be
	// overwritten, not duplicated.
	bars[2].Close = 999
	if _, err := store.SavePrices(ctx, bars); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := store.PriceHistory(ctx, "TCS", 100)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 bars after re-save, got %d", len(got))
	}
	if got[2].Close != 999 {
		t.Errorf("expected revised close 999, got %v", got[2].Close)
	}
}

func TestPriceHistory_AscendingAndLimited(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.SavePrices(ctx, testBars("TCS", 10)); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.PriceHistory(ctx, "TCS", 4)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 bars, got %d", len(got))
	}
	// The most recent 4 bars, oldest first.
	if !got[0].Date.Equal(day(6)) || !got[3].Date.Equal(day(9)) {
		t.Errorf("expected days 6..9, got %v..%v", got[0].Date, got[3].Date)
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Date.Before(got[i].Date) {
			t.Errorf("history not ascending at %d: %v >= %v", i, got[i-1].Date, got[i].Date)
		}
	}
}

func TestPriceHistory_UnknownTicker_Empty(t *testing.T) {
	store := newTestStore(t)
	got, err := store.PriceHistory(context.Background(), "NOPE", 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no bars, got %d", len(got))
	}
}

func TestTickersWithData(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.SavePrices(ctx, testBars("TCS", 3))
	store.SavePrices(ctx, testBars("INFY", 3))
	store.SavePrices(ctx, testBars("TCS", 3)) // duplicate ticker

	tickers, err := store.TickersWithData(ctx)
	if err != nil {
		t.Fatalf("tickers: %v", err)
	}
	if len(tickers) != 2 || tickers[0] != "INFY" || tickers[1] != "TCS" {
		t.Errorf("expected [INFY TCS], got %v", tickers)
	}
}

func testSnapshot(ticker string, d time.Time) *model.IndicatorSnapshot {
	return &model.IndicatorSnapshot{
		Ticker:        ticker,
		Date:          d,
		ClosePrice:    105.5,
		RSI:           model.Float(62.3),
		MACDValue:     model.Float(1.25),
		MACDSignal:    model.Float(1.10),
		MACDHistogram: model.Float(0.15),
		SMA20:         model.Float(103.2),
		SMA50:         model.Float(101.8),
	}
}

func TestSaveAnalysis_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := testSnapshot("TCS", day(0))
	result := model.SignalResult{
		Signal:      model.SignalBuy,
		Confidence:  0.42,
		Reasons:     []string{"MACD bullish crossover (hist: 0.150)", "Trend: uptrend"},
		GeneratedAt: time.Now().UTC(),
		Indicators:  snap,
	}

	if err := store.SaveAnalysis(ctx, snap, result); err != nil {
		t.Fatalf("save analysis: %v", err)
	}

	rec, err := store.LatestAnalysis(ctx, "TCS")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.Signal != model.SignalBuy || rec.Confidence != 0.42 {
		t.Errorf("got signal=%s confidence=%v", rec.Signal, rec.Confidence)
	}
	if rec.RSI == nil || *rec.RSI != 62.3 {
		t.Errorf("expected rsi 62.3, got %v", rec.RSI)
	}
	if len(rec.Reasons) != 2 || rec.Reasons[1] != "Trend: uptrend" {
		t.Errorf("reasons round trip failed: %v", rec.Reasons)
	}
	if rec.Indicators == nil || rec.Indicators.ClosePrice != 105.5 {
		t.Errorf("snapshot round trip failed: %+v", rec.Indicators)
	}
	if rec.Indicators.SMA200 != nil {
		t.Error("absent fields should stay nil through the round trip")
	}
}

func TestSaveAnalysis_UpsertSameDay(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := testSnapshot("TCS", day(0))
	first := model.SignalResult{Signal: model.SignalHold, Confidence: 0.1, Reasons: []string{"No strong signals"}}
	second := model.SignalResult{Signal: model.SignalSell, Confidence: 0.3, Reasons: []string{"RSI overbought (72.0)"}}

	if err := store.SaveAnalysis(ctx, snap, first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.SaveAnalysis(ctx, snap, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	history, err := store.AnalysisHistory(ctx, "TCS", 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("re-analysis of the same day must overwrite, got %d rows", len(history))
	}
	if history[0].Signal != model.SignalSell {
		t.Errorf("expected the second result to win, got %s", history[0].Signal)
	}
}

func TestAnalysisHistory_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		snap := testSnapshot("TCS", day(i))
		result := model.SignalResult{Signal: model.SignalHold, Confidence: 0, Reasons: []string{"No strong signals"}}
		if err := store.SaveAnalysis(ctx, snap, result); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	history, err := store.AnalysisHistory(ctx, "TCS", 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(history))
	}
	if !history[0].Date.After(history[1].Date) {
		t.Errorf("history should be newest first: %v then %v", history[0].Date, history[1].Date)
	}
}

func TestLatestAnalysis_Unknown_ReturnsNil(t *testing.T) {
	store := newTestStore(t)
	rec, err := store.LatestAnalysis(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil record, got %+v", rec)
	}
}
