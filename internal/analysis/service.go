// Package analysis orchestrates the daily pipeline for each ticker:
// load price history, compute the indicator snapshot, fuse it into a
// signal, persist, cache, and alert on strong signals.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jeett25/stock-ai-assistant/internal/indicator"
	"github.com/jeett25/stock-ai-assistant/internal/logger"
	"github.com/jeett25/stock-ai-assistant/internal/metrics"
	"github.com/jeett25/stock-ai-assistant/internal/model"
	"github.com/jeett25/stock-ai-assistant/internal/notification"
	"github.com/jeett25/stock-ai-assistant/internal/signal"
)

// Service runs ticker analyses. The cache, notifier and metrics
// collaborators are optional; a nil value disables that step.
type Service struct {
	prices      model.PriceStore
	analyses    model.AnalysisStore
	cache       model.AnalysisCache
	notifier    notification.Notifier
	engine      *indicator.Engine
	gen         *signal.Generator
	prom        *metrics.Metrics
	log         *slog.Logger
	historyDays int
}

// Options carries the optional collaborators for a Service.
type Options struct {
	Cache    model.AnalysisCache
	Notifier notification.Notifier
	Metrics  *metrics.Metrics
	Logger   *slog.Logger

	// HistoryDays is how many bars to load per ticker. Defaults to 200
	// so the 200-day moving average has a full window.
	HistoryDays int
}

// NewService wires the analysis pipeline.
func NewService(prices model.PriceStore, analyses model.AnalysisStore, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	historyDays := opts.HistoryDays
	if historyDays <= 0 {
		historyDays = 200
	}
	return &Service{
		prices:      prices,
		analyses:    analyses,
		cache:       opts.Cache,
		notifier:    opts.Notifier,
		engine:      indicator.NewEngine(),
		gen:         signal.NewGenerator(),
		prom:        opts.Metrics,
		log:         log,
		historyDays: historyDays,
	}
}

// AnalyzeTicker runs the full pipeline for one ticker. Returns
// (nil, nil) when the ticker has too little history to analyze.
func (s *Service) AnalyzeTicker(ctx context.Context, ticker string) (*model.SignalResult, error) {
	ctx = logger.WithTraceID(ctx, logger.GenerateTraceID(ticker, time.Now()))
	log := s.log.With(append(logger.LogWithTrace(ctx), slog.String("ticker", ticker))...)

	bars, err := s.prices.PriceHistory(ctx, ticker, s.historyDays)
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", ticker, err)
	}

	computeStart := time.Now()
	snap, err := s.engine.ComputeSnapshot(ticker, bars)
	if err != nil {
		return nil, fmt.Errorf("compute indicators %s: %w", ticker, err)
	}
	if s.prom != nil {
		s.prom.IndicatorComputeDur.Observe(time.Since(computeStart).Seconds())
	}
	if snap == nil {
		log.Info("skipping ticker, insufficient history",
			slog.Int("bars", len(bars)), slog.Int("min_bars", indicator.MinBars))
		if s.prom != nil {
			s.prom.AnalysesSkipped.Inc()
		}
		return nil, nil
	}

	result := s.gen.Generate(snap)
	log.Info("analysis complete",
		slog.String("signal", string(result.Signal)),
		slog.Float64("confidence", result.Confidence),
		slog.Float64("close", snap.ClosePrice),
	)

	storeStart := time.Now()
	if err := s.analyses.SaveAnalysis(ctx, snap, result); err != nil {
		return nil, fmt.Errorf("save analysis %s: %w", ticker, err)
	}
	if s.prom != nil {
		s.prom.StoreCommitDur.Observe(time.Since(storeStart).Seconds())
		s.prom.AnalysesTotal.Inc()
		s.prom.SignalsTotal.WithLabelValues(string(result.Signal)).Inc()
	}

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, ticker, result); err != nil {
			// Cache failure is not fatal; SQLite already has the row.
			log.Warn("cache update failed", slog.Any("err", err))
		}
	}

	if s.notifier != nil && isStrong(result.Signal) {
		alert := notification.SignalAlert(ticker, result)
		if err := s.notifier.Send(ctx, alert); err != nil {
			log.Warn("alert delivery failed", slog.Any("err", err))
		}
	}

	return &result, nil
}

func isStrong(sig model.Signal) bool {
	return sig == model.SignalStrongBuy || sig == model.SignalStrongSell
}

// Summary reports the outcome of a RunAll pass.
type Summary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// RunAll analyzes every ticker in the list, or every ticker with
// stored data when the list is empty. Per-ticker failures are logged
// and counted; one bad ticker never aborts the run.
func (s *Service) RunAll(ctx context.Context, tickers []string) (Summary, error) {
	var sum Summary

	if len(tickers) == 0 {
		var err error
		tickers, err = s.prices.TickersWithData(ctx)
		if err != nil {
			return sum, fmt.Errorf("list tickers: %w", err)
		}
	}

	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		result, err := s.AnalyzeTicker(ctx, ticker)
		switch {
		case err != nil:
			sum.Failed++
			s.log.Error("ticker analysis failed", slog.String("ticker", ticker), slog.Any("err", err))
			if s.prom != nil {
				s.prom.AnalysisErrors.Inc()
			}
		case result == nil:
			sum.Skipped++
		default:
			sum.Succeeded++
		}
	}

	if s.prom != nil {
		s.prom.LastRunTS.SetToCurrentTime()
	}
	s.log.Info("analysis run complete",
		slog.Int("succeeded", sum.Succeeded),
		slog.Int("skipped", sum.Skipped),
		slog.Int("failed", sum.Failed),
	)
	return sum, nil
}
