package collector

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/analysis"
	"StockPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  map[string][]model.Bar // per-symbol override
	Errs  map[string]error
	Calls []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.Bar, error) {
	m.Calls = append(m.Calls, symbol)
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return GenerateMockBars(m.Price, days), nil
}

// GenerateMockBars builds a gently rising daily series ending yesterday.
func GenerateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	now := time.Now().Truncate(24 * time.Hour)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   now.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches one symbol's bars and runs the indicator engine on them.
type Collector struct {
	Fetcher  Fetcher
	Lookback int
	Options  analysis.Options
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, lookback int, opts analysis.Options) *Collector {
	return &Collector{Fetcher: fetcher, Lookback: lookback, Options: opts}
}

// Collect fetches market data and computes the analysis for symbol. Any
// failure, including a panic inside a provider, comes back as an error so
// one bad symbol never stops the others.
func (c *Collector) Collect(ctx context.Context, symbol string) (res *model.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("analyze %s: unexpected panic: %v", symbol, r)
		}
	}()

	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.Lookback)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	series := &model.BarSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}
	return analysis.Analyze(series, c.Options)
}
