// Package notification delivers signal alerts to external channels.
// The analysis job raises an alert whenever a ticker crosses into a
// STRONG_BUY or STRONG_SELL signal.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jeett25/stock-ai-assistant/internal/model"
)

// AlertLevel represents the severity of an alert.
type AlertLevel string

const (
	AlertInfo     AlertLevel = "INFO"
	AlertWarning  AlertLevel = "WARNING"
	AlertCritical AlertLevel = "CRITICAL"
)

// Alert represents a notification to be sent.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}

// Notifier is the interface for all notification backends.
type Notifier interface {
	// Send delivers an alert. Returns error if delivery fails.
	Send(ctx context.Context, alert Alert) error
}

// LogNotifier logs alerts instead of delivering them, useful for
// development and for runs without a Telegram token configured.
type LogNotifier struct{}

// NewLogNotifier creates a log-based notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(ctx context.Context, alert Alert) error {
	slog.Info("alert",
		slog.String("level", string(alert.Level)),
		slog.String("title", alert.Title),
		slog.String("message", alert.Message),
	)
	return nil
}

// SignalAlert builds the alert for a strong signal on a ticker.
func SignalAlert(ticker string, result model.SignalResult) Alert {
	level := AlertWarning
	if result.Signal == model.SignalStrongBuy {
		level = AlertInfo
	}

	return Alert{
		Level: level,
		Title: fmt.Sprintf("%s: %s", ticker, result.Signal),
		Message: fmt.Sprintf("Confidence %.0f%%\n%s",
			result.Confidence*100, strings.Join(result.Reasons, "\n")),
	}
}
