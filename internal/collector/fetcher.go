package collector

import (
	"context"
	"errors"

	"StockPulse/internal/model"
)

// ErrNoData means the provider answered but returned no usable bars.
var ErrNoData = errors.New("no data returned")

// Fetcher defines the interface for fetching daily bars.
// Implementations return bars oldest first, at most `days` of them.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error)
	Name() string
}
