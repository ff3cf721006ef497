// Package config loads application configuration from a YAML file with
// environment variable overrides and sensible defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"` // empty disables the cache
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`

	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`

	Ingestion struct {
		Tickers  []string `yaml:"tickers"`
		Exchange string   `yaml:"exchange"` // NSE, BSE or US
		DaysBack int      `yaml:"days_back"`
		Cron     string   `yaml:"cron"`
	} `yaml:"ingestion"`

	Analysis struct {
		HistoryDays int    `yaml:"history_days"`
		Cron        string `yaml:"cron"`
	} `yaml:"analysis"`

	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides, then fills in defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("TICKERS"); v != "" {
		cfg.Ingestion.Tickers = splitTickers(v)
	}
	if v := os.Getenv("EXCHANGE"); v != "" {
		cfg.Ingestion.Exchange = v
	}
	if v := os.Getenv("INGEST_CRON"); v != "" {
		cfg.Ingestion.Cron = v
	}
	if v := os.Getenv("ANALYSIS_CRON"); v != "" {
		cfg.Analysis.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockai.db"
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9102"
	}
	if cfg.Ingestion.Exchange == "" {
		cfg.Ingestion.Exchange = "NSE"
	}
	if cfg.Ingestion.DaysBack == 0 {
		cfg.Ingestion.DaysBack = 365
	}
	if cfg.Ingestion.Cron == "" {
		// Weekdays at 18:30 IST, after NSE settlement
		cfg.Ingestion.Cron = "0 30 18 * * 1-5"
	}
	if cfg.Analysis.HistoryDays == 0 {
		cfg.Analysis.HistoryDays = 200
	}
	if cfg.Analysis.Cron == "" {
		cfg.Analysis.Cron = "0 0 19 * * 1-5"
	}

	return cfg, nil
}

func splitTickers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	if len(c.Ingestion.Tickers) == 0 {
		return fmt.Errorf("ingestion.tickers must list at least one ticker")
	}
	switch strings.ToUpper(c.Ingestion.Exchange) {
	case "NSE", "BSE", "US":
	default:
		return fmt.Errorf("ingestion.exchange must be NSE, BSE or US, got %q", c.Ingestion.Exchange)
	}
	if c.Analysis.HistoryDays < 50 {
		return fmt.Errorf("analysis.history_days must be at least 50")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when bot_token is set")
	}
	return nil
}
