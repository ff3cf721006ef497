package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFile_UsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("a missing file should not be an error: %v", err)
	}
	if cfg.Database.SQLitePath != "data/stockai.db" {
		t.Errorf("default sqlite path: got %q", cfg.Database.SQLitePath)
	}
	if cfg.Metrics.Addr != ":9102" {
		t.Errorf("default metrics addr: got %q", cfg.Metrics.Addr)
	}
	if cfg.Ingestion.Exchange != "NSE" {
		t.Errorf("default exchange: got %q", cfg.Ingestion.Exchange)
	}
	if cfg.Analysis.HistoryDays != 200 {
		t.Errorf("default history days: got %d", cfg.Analysis.HistoryDays)
	}
	if cfg.Ingestion.Cron == "" || cfg.Analysis.Cron == "" {
		t.Error("cron defaults should be set")
	}
}

func TestLoad_YAMLValues(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
database:
  sqlite_path: /var/lib/stockai/stockai.db
ingestion:
  tickers: [TCS, INFY, RELIANCE]
  exchange: BSE
  days_back: 90
analysis:
  history_days: 120
telegram:
  bot_token: tok
  chat_id: "123"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level: got %q", cfg.LogLevel)
	}
	if cfg.Database.SQLitePath != "/var/lib/stockai/stockai.db" {
		t.Errorf("sqlite path: got %q", cfg.Database.SQLitePath)
	}
	if len(cfg.Ingestion.Tickers) != 3 || cfg.Ingestion.Tickers[2] != "RELIANCE" {
		t.Errorf("tickers: got %v", cfg.Ingestion.Tickers)
	}
	if cfg.Ingestion.Exchange != "BSE" || cfg.Ingestion.DaysBack != 90 {
		t.Errorf("ingestion: got %+v", cfg.Ingestion)
	}
	if cfg.Analysis.HistoryDays != 120 {
		t.Errorf("history days: got %d", cfg.Analysis.HistoryDays)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config should validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  sqlite_path: from-yaml.db
ingestion:
  tickers: [TCS]
`)
	t.Setenv("SQLITE_PATH", "from-env.db")
	t.Setenv("TICKERS", "INFY, WIPRO")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("ANALYSIS_CRON", "0 0 20 * * 1-5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.SQLitePath != "from-env.db" {
		t.Errorf("env should override yaml, got %q", cfg.Database.SQLitePath)
	}
	if len(cfg.Ingestion.Tickers) != 2 || cfg.Ingestion.Tickers[1] != "WIPRO" {
		t.Errorf("TICKERS override: got %v", cfg.Ingestion.Tickers)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("REDIS_ADDR override: got %q", cfg.Redis.Addr)
	}
	if cfg.Analysis.Cron != "0 0 20 * * 1-5" {
		t.Errorf("ANALYSIS_CRON override: got %q", cfg.Analysis.Cron)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, _ := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		cfg.Ingestion.Tickers = []string{"TCS"}
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		if err := base().Validate(); err != nil {
			t.Errorf("expected valid config: %v", err)
		}
	})

	t.Run("no tickers", func(t *testing.T) {
		cfg := base()
		cfg.Ingestion.Tickers = nil
		if err := cfg.Validate(); err == nil {
			t.Error("expected an error for empty tickers")
		}
	})

	t.Run("bad exchange", func(t *testing.T) {
		cfg := base()
		cfg.Ingestion.Exchange = "LSE"
		if err := cfg.Validate(); err == nil {
			t.Error("expected an error for an unsupported exchange")
		}
	})

	t.Run("too little history", func(t *testing.T) {
		cfg := base()
		cfg.Analysis.HistoryDays = 30
		if err := cfg.Validate(); err == nil {
			t.Error("expected an error for history_days below the analysis minimum")
		}
	})

	t.Run("telegram token without chat id", func(t *testing.T) {
		cfg := base()
		cfg.Telegram.BotToken = "tok"
		if err := cfg.Validate(); err == nil {
			t.Error("expected an error for a token without a chat id")
		}
	})
}
