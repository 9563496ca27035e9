package collector

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"StockPulse/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// RESTFetcher implements Fetcher against a JSON bars endpoint:
//
//	GET {base}/api/v1/bars/daily?symbol=AAPL&limit=90
//	[{"timestamp":1735689600,"open":..,"high":..,"low":..,"close":..,"volume":..}, ...]
//
// Price fields may be plain numbers or single-element wrappers.
type RESTFetcher struct {
	Client *resty.Client
}

// NewRESTFetcher creates a new fetcher with optional bearer key and proxy.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &RESTFetcher{Client: client}
}

func (f *RESTFetcher) Name() string { return "rest" }

func (f *RESTFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error) {
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"limit":  strconv.Itoa(days),
		}).
		Get("/api/v1/bars/daily")
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if !gjson.ValidBytes(resp.Body()) {
		return nil, fmt.Errorf("decode bars: invalid json")
	}

	items := gjson.ParseBytes(resp.Body()).Array()
	if len(items) == 0 {
		return nil, fmt.Errorf("fetch bars: %w", ErrNoData)
	}
	bars := make([]model.Bar, 0, len(items))
	for i, it := range items {
		ts := it.Get("timestamp")
		if ts.Type != gjson.Number {
			return nil, fmt.Errorf("decode bars: bar %d: missing timestamp", i)
		}
		bar, err := newBar(time.Unix(ts.Int(), 0),
			it.Get("open"), it.Get("high"), it.Get("low"), it.Get("close"), it.Get("volume"))
		if err != nil {
			return nil, fmt.Errorf("decode bars: bar %d: %w", i, err)
		}
		bars = append(bars, bar)
	}
	return finish(bars, days), nil
}
