package collector

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/model"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// chartIter is the subset of *chart.Iter the fetcher consumes.
type chartIter interface {
	Next() bool
	Bar() *finance.ChartBar
	Err() error
}

// FinanceGoFetcher implements Fetcher with the piquette/finance-go chart client.
type FinanceGoFetcher struct {
	Now   func() time.Time
	chart func(*chart.Params) chartIter
}

// NewFinanceGoFetcher creates a fetcher backed by finance-go's default backend.
func NewFinanceGoFetcher() *FinanceGoFetcher {
	return &FinanceGoFetcher{
		Now:   time.Now,
		chart: func(p *chart.Params) chartIter { return chart.Get(p) },
	}
}

func (f *FinanceGoFetcher) Name() string { return "financego" }

func (f *FinanceGoFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	end := f.Now()
	// Weekends and holidays: roughly 7 calendar days per 5 sessions, plus slack.
	start := end.AddDate(0, 0, -(days*7/5 + 10))
	iter := f.chart(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	var bars []model.Bar
	for iter.Next() {
		b := iter.Bar()
		if b == nil {
			continue
		}
		bar, err := newBar(time.Unix(int64(b.Timestamp), 0), b.Open, b.High, b.Low, b.Close, b.Volume)
		if err != nil {
			return nil, fmt.Errorf("financego: %w", err)
		}
		bars = append(bars, bar)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("financego fetch: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("financego: %w", ErrNoData)
	}
	return finish(bars, days), nil
}
