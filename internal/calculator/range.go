package calculator

import (
	"errors"
	"math"

	"StockPulse/internal/model"
)

// CalculateRange scans the most recent `days` bars and returns the high and low.
func CalculateRange(bars []model.Bar, days int) (model.PriceRange, error) {
	if days <= 0 {
		return model.PriceRange{}, errors.New("days must be positive")
	}
	if len(bars) == 0 {
		return model.PriceRange{}, errors.New("no bars provided")
	}
	n := len(bars)
	start := n - days
	if start < 0 {
		start = 0
	}
	high := math.Inf(-1)
	low := math.Inf(1)
	for i := start; i < n; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return model.PriceRange{Days: n - start, High: high, Low: low}, nil
}
