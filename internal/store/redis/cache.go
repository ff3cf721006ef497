// Package redis caches the latest analysis result per ticker so
// downstream consumers (dashboards, chat frontends) can read signals
// without touching SQLite. Each write also publishes to a pub/sub
// channel for live subscribers.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/jeett25/stock-ai-assistant/internal/model"
)

const defaultLatestTTL = 48 * time.Hour

// Config configures the Redis cache.
type Config struct {
	Addr     string // e.g. "localhost:6379"
	Password string
	DB       int
}

// Cache is a Redis-backed AnalysisCache.
type Cache struct {
	client *goredis.Client
	ttl    time.Duration
}

// Client returns the underlying Redis client for health checks.
func (c *Cache) Client() *goredis.Client { return c.client }

// New creates a Cache and pings the server.
func New(cfg Config) (*Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("redis cache connected", slog.String("addr", cfg.Addr))
	return &Cache{client: client, ttl: defaultLatestTTL}, nil
}

func latestKey(ticker string) string { return "analysis:latest:" + ticker }

// SetLatest stores the latest result under analysis:latest:{ticker}
// with a TTL and publishes it to pub:analysis:{ticker}.
func (c *Cache) SetLatest(ctx context.Context, ticker string, result model.SignalResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal signal result: %w", err)
	}

	if err := c.client.Set(ctx, latestKey(ticker), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set latest %s: %w", ticker, err)
	}
	if err := c.client.Publish(ctx, "pub:analysis:"+ticker, data).Err(); err != nil {
		// Pub/sub is best effort; the cached key is already written.
		slog.Warn("redis publish failed", slog.String("ticker", ticker), slog.Any("err", err))
	}
	return nil
}

// Latest returns the cached result, or nil on a cache miss.
func (c *Cache) Latest(ctx context.Context, ticker string) (*model.SignalResult, error) {
	data, err := c.client.Get(ctx, latestKey(ticker)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get latest %s: %w", ticker, err)
	}

	var result model.SignalResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal cached result %s: %w", ticker, err)
	}
	return &result, nil
}

// Close releases the client.
func (c *Cache) Close() error {
	return c.client.Close()
}
