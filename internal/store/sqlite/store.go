// Package sqlite persists daily price bars and analysis results.
//
// Both tables are keyed by (ticker, date) with upsert semantics: price
// ingestion overwrites bars it re-fetches, and the analysis job writes
// exactly one row per ticker per day.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jeett25/stock-ai-assistant/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

const dateLayout = "2006-01-02"

// Config configures the SQLite store.
type Config struct {
	DBPath string // path to the database file, e.g. "data/stockai.db"
}

// Store is a SQLite-backed PriceStore and AnalysisStore.
type Store struct {
	db *sql.DB
}

// DB returns the underlying sql.DB for health checks.
func (s *Store) DB() *sql.DB { return s.db }

// New opens (or creates) the database with WAL mode and runs the schema.
func New(cfg Config) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// Single writer keeps upserts serialized without SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	slog.Info("sqlite store opened", slog.String("path", cfg.DBPath))
	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS stock_prices (
			ticker  TEXT NOT NULL,
			date    TEXT NOT NULL,
			open    REAL NOT NULL,
			high    REAL NOT NULL,
			low     REAL NOT NULL,
			close   REAL NOT NULL,
			volume  INTEGER NOT NULL,
			PRIMARY KEY (ticker, date)
		);

		CREATE TABLE IF NOT EXISTS analyses (
			ticker          TEXT NOT NULL,
			date            TEXT NOT NULL,
			rsi             REAL,
			macd_value      REAL,
			macd_signal     REAL,
			macd_histogram  REAL,
			sma_20          REAL,
			sma_50          REAL,
			signal          TEXT NOT NULL,
			confidence      REAL NOT NULL,
			reasons         TEXT NOT NULL,
			indicators      TEXT,
			PRIMARY KEY (ticker, date)
		);
	`)
	return err
}

// SavePrices upserts bars keyed by (ticker, date) in one transaction.
func (s *Store) SavePrices(ctx context.Context, bars []model.PriceBar) (int, error) {
	if len(bars) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite begin: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stock_prices (ticker, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker, date) DO UPDATE SET
			open = excluded.open, high = excluded.high,
			low = excluded.low, close = excluded.close,
			volume = excluded.volume
	`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("sqlite prepare: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, b.Ticker, b.DateKey(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("sqlite upsert price %s/%s: %w", b.Ticker, b.DateKey(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite commit: %w", err)
	}
	return len(bars), nil
}

// PriceHistory returns the most recent `days` bars for a ticker,
// ascending by date (ready to feed the indicator engine).
func (s *Store) PriceHistory(ctx context.Context, ticker string, days int) ([]model.PriceBar, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ticker, date, open, high, low, close, volume
		FROM stock_prices
		WHERE ticker = ?
		ORDER BY date DESC
		LIMIT ?
	`, ticker, days)
	if err != nil {
		return nil, fmt.Errorf("sqlite query prices: %w", err)
	}
	defer rows.Close()

	var bars []model.PriceBar
	for rows.Next() {
		var b model.PriceBar
		var date string
		if err := rows.Scan(&b.Ticker, &date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("sqlite scan price: %w", err)
		}
		b.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("sqlite parse date %q: %w", date, err)
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query returned newest-first; reverse into chronological order.
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}

// TickersWithData lists distinct tickers that have stored bars.
func (s *Store) TickersWithData(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT ticker FROM stock_prices ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("sqlite query tickers: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("sqlite scan ticker: %w", err)
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}

// SaveAnalysis upserts one analysis row keyed by (ticker, date). The
// reasons list and the full snapshot are stored as JSON; dates inside
// the snapshot serialize as ISO-8601 via encoding/json.
func (s *Store) SaveAnalysis(ctx context.Context, snap *model.IndicatorSnapshot, result model.SignalResult) error {
	reasons, err := json.Marshal(result.Reasons)
	if err != nil {
		return fmt.Errorf("marshal reasons: %w", err)
	}
	indicators, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal indicators: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (ticker, date, rsi, macd_value, macd_signal, macd_histogram,
			sma_20, sma_50, signal, confidence, reasons, indicators)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker, date) DO UPDATE SET
			rsi = excluded.rsi,
			macd_value = excluded.macd_value,
			macd_signal = excluded.macd_signal,
			macd_histogram = excluded.macd_histogram,
			sma_20 = excluded.sma_20,
			sma_50 = excluded.sma_50,
			signal = excluded.signal,
			confidence = excluded.confidence,
			reasons = excluded.reasons,
			indicators = excluded.indicators
	`,
		snap.Ticker, snap.Date.Format(dateLayout),
		nullable(snap.RSI), nullable(snap.MACDValue), nullable(snap.MACDSignal), nullable(snap.MACDHistogram),
		nullable(snap.SMA20), nullable(snap.SMA50),
		string(result.Signal), result.Confidence, string(reasons), string(indicators),
	)
	if err != nil {
		return fmt.Errorf("sqlite upsert analysis %s/%s: %w", snap.Ticker, snap.Date.Format(dateLayout), err)
	}
	return nil
}

// LatestAnalysis returns the most recent analysis for a ticker, or nil.
func (s *Store) LatestAnalysis(ctx context.Context, ticker string) (*model.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT ticker, date, rsi, macd_value, macd_signal, macd_histogram,
			sma_20, sma_50, signal, confidence, reasons, indicators
		FROM analyses
		WHERE ticker = ?
		ORDER BY date DESC
		LIMIT 1
	`, ticker)

	rec, err := scanAnalysis(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// AnalysisHistory returns up to `days` analyses for a ticker, newest first.
func (s *Store) AnalysisHistory(ctx context.Context, ticker string, days int) ([]model.AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ticker, date, rsi, macd_value, macd_signal, macd_histogram,
			sma_20, sma_50, signal, confidence, reasons, indicators
		FROM analyses
		WHERE ticker = ?
		ORDER BY date DESC
		LIMIT ?
	`, ticker, days)
	if err != nil {
		return nil, fmt.Errorf("sqlite query analyses: %w", err)
	}
	defer rows.Close()

	var records []model.AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func scanAnalysis(scan func(...any) error) (*model.AnalysisRecord, error) {
	var rec model.AnalysisRecord
	var date, sig, reasons string
	var indicators sql.NullString
	var rsi, macdValue, macdSignal, macdHist, sma20, sma50 sql.NullFloat64

	err := scan(&rec.Ticker, &date, &rsi, &macdValue, &macdSignal, &macdHist,
		&sma20, &sma50, &sig, &rec.Confidence, &reasons, &indicators)
	if err != nil {
		return nil, err
	}
	rec.Signal = model.Signal(sig)

	rec.Date, err = time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("sqlite parse analysis date %q: %w", date, err)
	}
	rec.RSI = fromNullable(rsi)
	rec.MACDValue = fromNullable(macdValue)
	rec.MACDSignal = fromNullable(macdSignal)
	rec.MACDHistogram = fromNullable(macdHist)
	rec.SMA20 = fromNullable(sma20)
	rec.SMA50 = fromNullable(sma50)

	if err := json.Unmarshal([]byte(reasons), &rec.Reasons); err != nil {
		return nil, fmt.Errorf("unmarshal reasons: %w", err)
	}
	if indicators.Valid && indicators.String != "" {
		var snap model.IndicatorSnapshot
		if err := json.Unmarshal([]byte(indicators.String), &snap); err != nil {
			return nil, fmt.Errorf("unmarshal indicators: %w", err)
		}
		rec.Indicators = &snap
	}
	return &rec, nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func fromNullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
