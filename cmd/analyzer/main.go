// Command analyzer runs the daily stock analysis service: it ingests
// daily bars from Yahoo Finance, computes technical indicators, fuses
// them into trading signals, persists everything to SQLite, caches the
// latest signal in Redis, and alerts on strong signals.
//
// With -once it runs a single ingestion + analysis pass and exits;
// otherwise it stays up on the configured cron schedules.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jeett25/stock-ai-assistant/config"
	"github.com/jeett25/stock-ai-assistant/internal/analysis"
	"github.com/jeett25/stock-ai-assistant/internal/fetch"
	"github.com/jeett25/stock-ai-assistant/internal/logger"
	"github.com/jeett25/stock-ai-assistant/internal/markethours"
	"github.com/jeett25/stock-ai-assistant/internal/metrics"
	"github.com/jeett25/stock-ai-assistant/internal/model"
	"github.com/jeett25/stock-ai-assistant/internal/notification"
	"github.com/jeett25/stock-ai-assistant/internal/scheduler"
	redisstore "github.com/jeett25/stock-ai-assistant/internal/store/redis"
	sqlitestore "github.com/jeett25/stock-ai-assistant/internal/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "path to YAML config")
		once       = flag.Bool("once", false, "run one ingestion + analysis pass and exit")
		tickersArg = flag.String("tickers", "", "comma-separated ticker override")
	)
	flag.Parse()

	// .env is optional; real deployments set env vars directly.
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", slog.Any("err", err))
		os.Exit(1)
	}
	if *tickersArg != "" {
		cfg.Ingestion.Tickers = splitList(*tickersArg)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("config validation failed", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.Init("analyzer", logger.ParseLevel(cfg.LogLevel))
	log.Info("starting",
		slog.Int("tickers", len(cfg.Ingestion.Tickers)),
		slog.String("exchange", cfg.Ingestion.Exchange),
		slog.Bool("once", *once),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutdown signal received")
		cancel()
	}()

	// ---- Stores ----
	os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755)
	store, err := sqlitestore.New(sqlitestore.Config{DBPath: cfg.Database.SQLitePath})
	if err != nil {
		log.Error("sqlite init failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer store.Close()

	var cache model.AnalysisCache
	var redisCache *redisstore.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err = redisstore.New(redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("redis unavailable, continuing without cache", slog.Any("err", err))
		} else {
			cache = redisCache
			defer redisCache.Close()
		}
	}

	// ---- Metrics & health ----
	prom := metrics.NewMetrics()
	health := metrics.NewHealthStatus(cfg.Redis.Addr != "")
	health.SetSQLiteOK(true)
	metricsSrv := metrics.NewServer(cfg.Metrics.Addr, health)
	metricsSrv.Start()
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		metricsSrv.Stop(shutdownCtx)
		done()
	}()

	if redisCache != nil {
		health.StartLivenessChecker(ctx, redisCache.Client(), store.DB(), 30*time.Second)
	} else {
		health.StartLivenessChecker(ctx, nil, store.DB(), 30*time.Second)
	}

	// ---- Notifier ----
	var notifier notification.Notifier
	if cfg.Telegram.BotToken != "" {
		notifier = notification.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		log.Info("telegram alerts enabled")
	} else {
		notifier = notification.NewLogNotifier()
	}

	// ---- Pipeline ----
	fetcher := fetch.NewYahooClient(cfg.Ingestion.Exchange, fetch.WithProxy(cfg.Proxy))
	service := analysis.NewService(store, store, analysis.Options{
		Cache:       cache,
		Notifier:    notifier,
		Metrics:     prom,
		Logger:      log,
		HistoryDays: cfg.Analysis.HistoryDays,
	})

	sched := scheduler.New(ctx, fetcher, store, service, prom, log,
		cfg.Ingestion.Tickers, cfg.Ingestion.DaysBack)
	if ex := strings.ToUpper(cfg.Ingestion.Exchange); ex == "NSE" || ex == "BSE" {
		sched.SetTradingCalendar(markethours.IsTradingDay)
	}

	if *once {
		sched.RunOnce(ctx)
		health.SetLastAnalysisAt(time.Now())
		return
	}

	if err := sched.Register(cfg.Ingestion.Cron, cfg.Analysis.Cron); err != nil {
		log.Error("register cron jobs failed", slog.Any("err", err))
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	log.Info("running",
		slog.String("ingest_cron", cfg.Ingestion.Cron),
		slog.String("analysis_cron", cfg.Analysis.Cron),
		slog.String("metrics_addr", cfg.Metrics.Addr),
	)
	<-ctx.Done()
}

func splitList(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
