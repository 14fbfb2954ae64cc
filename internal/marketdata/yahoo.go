package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/yourusername/stockcast/internal/models"
)

// YahooClient implements Source against the Yahoo Finance v8 chart API.
type YahooClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	now        func() time.Time
}

// yahooChartResponse is the top-level chart API container
type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *yahooChartError   `json:"error"`
	} `json:"chart"`
}

type yahooChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yahooChartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []yahooQuote `json:"quote"`
	} `json:"indicators"`
}

// yahooQuote carries parallel arrays; null entries decode to nil and the
// whole row is dropped.
type yahooQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// NewYahooClient creates a new Yahoo chart API client
func NewYahooClient(httpClient *RateLimitedHTTPClient, baseURL string, now func() time.Time) *YahooClient {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	if now == nil {
		now = time.Now
	}
	return &YahooClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		now:        now,
	}
}

// GetDailyBars retrieves daily bars covering the trailing windowDays
// calendar days, sorted ascending by date with null rows dropped.
func (c *YahooClient) GetDailyBars(ctx context.Context, symbol string, windowDays int) ([]models.Bar, error) {
	end := c.now()
	start := end.AddDate(0, 0, -windowDays)

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, url.PathEscape(symbol), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewSourceError("yahoo", ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "stockcast/1.0")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewSourceError("yahoo", ErrCodeNetworkError, "failed to fetch daily bars", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, NewSourceError("yahoo", ErrCodeNotFound, fmt.Sprintf("symbol %s not found", symbol), nil)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewSourceError("yahoo", ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewSourceError("yahoo", ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var chart yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, NewSourceError("yahoo", ErrCodeInvalidData, "failed to parse response", err)
	}

	if chart.Chart.Error != nil {
		return nil, NewSourceError("yahoo", ErrCodeServerError, chart.Chart.Error.Description, nil)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, NewSourceError("yahoo", ErrCodeInvalidData, "empty chart result", nil)
	}

	return convertChartResult(&chart.Chart.Result[0])
}

// Name returns the data source name
func (c *YahooClient) Name() string {
	return "yahoo"
}

// convertChartResult flattens the parallel quote arrays into bars, skipping
// rows with any missing field.
func convertChartResult(result *yahooChartResult) ([]models.Bar, error) {
	quote := result.Indicators.Quote[0]
	bars := make([]models.Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil ||
			quote.Close[i] == nil || quote.Volume[i] == nil {
			continue
		}

		bar := models.Bar{
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: *quote.Volume[i],
		}
		if bar.Volume < 0 {
			continue
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	// Collapse duplicate trading days, keeping the later row
	deduped := bars[:0]
	for _, b := range bars {
		if len(deduped) > 0 && deduped[len(deduped)-1].Date.Equal(b.Date) {
			deduped[len(deduped)-1] = b
			continue
		}
		deduped = append(deduped, b)
	}

	if len(deduped) == 0 {
		return nil, NewSourceError("yahoo", ErrCodeInvalidData, "no usable rows in chart result", nil)
	}
	return deduped, nil
}
