// Package scheduler drives the recurring ingestion and analysis jobs
// on cron schedules. Specs use the six-field form with seconds, e.g.
// "0 30 18 * * 1-5" for weekdays at 18:30.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jeett25/stock-ai-assistant/internal/analysis"
	"github.com/jeett25/stock-ai-assistant/internal/metrics"
	"github.com/jeett25/stock-ai-assistant/internal/model"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron     *cron.Cron
	fetcher  model.PriceSource
	prices   model.PriceStore
	service  *analysis.Service
	prom     *metrics.Metrics
	log      *slog.Logger
	tickers  []string
	daysBack int
	ctx      context.Context

	// tradingDay gates the scheduled jobs. Nil means every day runs;
	// NSE/BSE deployments pass markethours.IsTradingDay so weekend and
	// holiday firings are skipped.
	tradingDay func(time.Time) bool
}

// New creates a Scheduler over the given collaborators. Metrics may be
// nil. tickers is the ingestion universe; daysBack is how much history
// each ingestion pass refreshes.
func New(ctx context.Context, fetcher model.PriceSource, prices model.PriceStore,
	service *analysis.Service, prom *metrics.Metrics, log *slog.Logger,
	tickers []string, daysBack int) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		fetcher:  fetcher,
		prices:   prices,
		service:  service,
		prom:     prom,
		log:      log,
		tickers:  tickers,
		daysBack: daysBack,
		ctx:      ctx,
	}
}

// SetTradingCalendar installs a trading-day predicate for the
// scheduled jobs. Manual RunOnce triggers bypass it.
func (s *Scheduler) SetTradingCalendar(isTradingDay func(time.Time) bool) {
	s.tradingDay = isTradingDay
}

// Register adds the ingestion and analysis jobs.
func (s *Scheduler) Register(ingestCron, analysisCron string) error {
	if _, err := s.cron.AddFunc(ingestCron, s.scheduled(s.RunIngestion)); err != nil {
		return fmt.Errorf("register ingestion job: %w", err)
	}
	if _, err := s.cron.AddFunc(analysisCron, s.scheduled(s.RunAnalysis)); err != nil {
		return fmt.Errorf("register analysis job: %w", err)
	}
	return nil
}

func (s *Scheduler) scheduled(job func(context.Context)) func() {
	return func() {
		if s.tradingDay != nil && !s.tradingDay(time.Now()) {
			s.log.Info("skipping scheduled run, not a trading day")
			return
		}
		job(s.ctx)
	}
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunIngestion fetches fresh daily bars for every configured ticker and
// upserts them into the price store. One bad ticker never aborts the
// pass.
func (s *Scheduler) RunIngestion(ctx context.Context) {
	s.log.Info("ingestion run starting", slog.Int("tickers", len(s.tickers)))

	var saved, failed int
	for _, ticker := range s.tickers {
		if err := ctx.Err(); err != nil {
			s.log.Warn("ingestion run cancelled", slog.Any("err", err))
			return
		}

		fetchStart := time.Now()
		bars, err := s.fetcher.DailyBars(ctx, ticker, s.daysBack)
		if s.prom != nil {
			s.prom.FetchDur.Observe(time.Since(fetchStart).Seconds())
		}
		if err != nil {
			failed++
			s.log.Error("fetch failed", slog.String("ticker", ticker), slog.Any("err", err))
			continue
		}

		n, err := s.prices.SavePrices(ctx, bars)
		if err != nil {
			failed++
			s.log.Error("save prices failed", slog.String("ticker", ticker), slog.Any("err", err))
			continue
		}
		saved += n
		if s.prom != nil {
			s.prom.PricesIngested.Add(float64(n))
		}
	}

	s.log.Info("ingestion run complete", slog.Int("bars_saved", saved), slog.Int("failed", failed))
}

// RunAnalysis analyzes every configured ticker.
func (s *Scheduler) RunAnalysis(ctx context.Context) {
	if _, err := s.service.RunAll(ctx, s.tickers); err != nil {
		s.log.Error("analysis run aborted", slog.Any("err", err))
	}
}

// RunOnce runs ingestion then analysis immediately, for the -once flag
// and for manual triggers.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.RunIngestion(ctx)
	s.RunAnalysis(ctx)
}
