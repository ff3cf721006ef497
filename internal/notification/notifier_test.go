package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/jeett25/stock-ai-assistant/internal/model"
)

func TestSignalAlert(t *testing.T) {
	result := model.SignalResult{
		Signal:     model.SignalStrongBuy,
		Confidence: 0.66,
		Reasons:    []string{"RSI oversold (25.0)", "MACD bullish crossover (hist: 0.500)"},
	}

	alert := SignalAlert("RELIANCE", result)
	if alert.Level != AlertInfo {
		t.Errorf("STRONG_BUY should be INFO, got %s", alert.Level)
	}
	if alert.Title != "RELIANCE: STRONG_BUY" {
		t.Errorf("unexpected title %q", alert.Title)
	}
	if !strings.Contains(alert.Message, "Confidence 66%") {
		t.Errorf("message should carry the confidence, got %q", alert.Message)
	}
	if !strings.Contains(alert.Message, "RSI oversold (25.0)") {
		t.Errorf("message should carry the reasons, got %q", alert.Message)
	}
}

func TestSignalAlert_StrongSellIsWarning(t *testing.T) {
	result := model.SignalResult{
		Signal:     model.SignalStrongSell,
		Confidence: 0.7,
		Reasons:    []string{"RSI overbought (78.0)"},
	}
	alert := SignalAlert("TCS", result)
	if alert.Level != AlertWarning {
		t.Errorf("STRONG_SELL should be WARNING, got %s", alert.Level)
	}
}

func TestLogNotifier_NeverFails(t *testing.T) {
	n := NewLogNotifier()
	err := n.Send(context.Background(), Alert{Level: AlertInfo, Title: "t", Message: "m"})
	if err != nil {
		t.Errorf("log notifier should not fail: %v", err)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	got := escapeMarkdown("TCS: STRONG_BUY (0.66)")
	want := `TCS: STRONG\_BUY \(0\.66\)`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
