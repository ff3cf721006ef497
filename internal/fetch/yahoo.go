// Package fetch pulls daily OHLCV bars from the Yahoo Finance chart
// API. Indian tickers get the exchange suffix Yahoo expects (.NS for
// NSE, .BO for BSE); US tickers pass through bare.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/jeett25/stock-ai-assistant/internal/logger"
	"github.com/jeett25/stock-ai-assistant/internal/model"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// US tickers commonly requested without an exchange hint. Anything
// else without a suffix gets the configured default exchange.
var knownUSTickers = map[string]bool{
	"AAPL": true, "GOOGL": true, "GOOG": true, "MSFT": true,
	"AMZN": true, "TSLA": true, "META": true, "NVDA": true,
	"NFLX": true, "AMD": true, "INTC": true, "IBM": true,
}

// YahooClient fetches daily bars from Yahoo Finance.
type YahooClient struct {
	client   *http.Client
	baseURL  string
	exchange string // default exchange for bare tickers: NSE, BSE or US
	retries  int
	backoff  time.Duration
}

// Option configures a YahooClient.
type Option func(*YahooClient)

// WithBaseURL overrides the API host, used by tests.
func WithBaseURL(u string) Option {
	return func(c *YahooClient) { c.baseURL = u }
}

// WithProxy routes requests through an HTTP proxy.
func WithProxy(proxyURL string) Option {
	return func(c *YahooClient) {
		if u, err := url.Parse(proxyURL); err == nil && proxyURL != "" {
			c.client.Transport = &http.Transport{Proxy: http.ProxyURL(u)}
		}
	}
}

// NewYahooClient creates a client that resolves bare tickers against
// the given default exchange.
func NewYahooClient(exchange string, opts ...Option) *YahooClient {
	c := &YahooClient{
		client:   &http.Client{Timeout: 30 * time.Second},
		baseURL:  defaultBaseURL,
		exchange: strings.ToUpper(exchange),
		retries:  3,
		backoff:  time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FormatSymbol maps a ticker to the Yahoo symbol for the exchange.
// Tickers that already carry a suffix (or an index prefix like ^GSPC)
// pass through unchanged.
func (c *YahooClient) FormatSymbol(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if strings.Contains(t, ".") || strings.HasPrefix(t, "^") {
		return t
	}
	if knownUSTickers[t] {
		return t
	}
	switch c.exchange {
	case "NSE":
		return t + ".NS"
	case "BSE":
		return t + ".BO"
	default:
		return t
	}
}

// yahooChart is the chart API response shape. Prices arrive as
// interface{} because Yahoo encodes missing bars as JSON null.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if n, ok := v.(float64); ok {
		return n
	}
	return 0
}

// rangeFor picks the smallest Yahoo range covering `days` calendar
// days. Daily interval caps out at 2y.
func rangeFor(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}

// DailyBars fetches up to `days` most recent daily bars for a ticker,
// ascending by date. Transient failures retry with backoff.
func (c *YahooClient) DailyBars(ctx context.Context, ticker string, days int) ([]model.PriceBar, error) {
	symbol := c.FormatSymbol(ticker)

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		bars, err := c.fetchChart(ctx, ticker, symbol, rangeFor(days))
		if err == nil {
			if len(bars) > days {
				bars = bars[len(bars)-days:]
			}
			return bars, nil
		}
		lastErr = err
		slog.Warn("yahoo fetch attempt failed",
			append(logger.LogWithTrace(ctx),
				slog.String("ticker", ticker),
				slog.String("symbol", symbol),
				slog.Int("attempt", attempt),
				slog.Any("err", err))...)

		if attempt < c.retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
		}
	}
	return nil, fmt.Errorf("yahoo daily bars %s: %w", symbol, lastErr)
}

func (c *YahooClient) fetchChart(ctx context.Context, ticker, symbol, rng string) ([]model.PriceBar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		c.baseURL, url.PathEscape(symbol), rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d for %s", resp.StatusCode, symbol)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data for %s", symbol)
	}
	quote := result.Indicators.Quote[0]

	bars := make([]model.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		cl := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // null bar (holiday, halted session)
		}
		day := time.Unix(ts, 0).UTC()
		bars = append(bars, model.PriceBar{
			Ticker: ticker,
			Date:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: int64(toFloat(quote.Volume[i])),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
