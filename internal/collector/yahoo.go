package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"StockPulse/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using Yahoo Finance public chart API.
type YahooFetcher struct {
	Client    *resty.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	client := resty.New().
		SetBaseURL(yahooBaseURL).
		SetTimeout(30*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooFetcher{
		Client: client,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
			"NDX":    "^NDX",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooRange picks the smallest chart range covering `days` trading sessions.
func yahooRange(days int) string {
	switch {
	case days <= 20:
		return "1mo"
	case days <= 60:
		return "3mo"
	case days <= 120:
		return "6mo"
	case days <= 250:
		return "1y"
	default:
		return "2y"
	}
}

func (f *YahooFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error) {
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"range":    yahooRange(days),
		}).
		Get("/v8/finance/chart/" + url.PathEscape(f.yahooSymbol(symbol)))
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	bars, err := parseYahooChart(resp.Body())
	if err != nil {
		return nil, err
	}
	return finish(bars, days), nil
}

func parseYahooChart(body []byte) ([]model.Bar, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("yahoo decode: invalid json")
	}
	doc := gjson.ParseBytes(body)
	if desc := doc.Get("chart.error.description"); desc.String() != "" {
		return nil, fmt.Errorf("yahoo api error: %s", desc.String())
	}

	result := doc.Get("chart.result.0")
	timestamps := result.Get("timestamp").Array()
	if len(timestamps) == 0 {
		return nil, fmt.Errorf("yahoo: %w", ErrNoData)
	}
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	bars := make([]model.Bar, 0, len(timestamps))
	for i, ts := range timestamps {
		o, h, l, c := at(opens, i), at(highs, i), at(lows, i), at(closes, i)
		if model.IsNull(o) && model.IsNull(h) && model.IsNull(l) && model.IsNull(c) {
			continue // skip null bars (holidays etc.)
		}
		bar, err := newBar(time.Unix(ts.Int(), 0), o, h, l, c, at(volumes, i))
		if err != nil {
			return nil, fmt.Errorf("yahoo: bar %d: %w", i, err)
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo: %w", ErrNoData)
	}
	return bars, nil
}

func at(values []gjson.Result, i int) gjson.Result {
	if i < len(values) {
		return values[i]
	}
	return gjson.Result{}
}
