package calculator

import (
	"errors"

	"StockPulse/internal/model"
)

// TrendPeriod is the SMA window used for trend classification.
const TrendPeriod = 50

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateSMA50 returns the 50-day simple moving average of closes.
func CalculateSMA50(bars []model.Bar) (float64, error) {
	return CalculateSMA(extractCloses(bars), TrendPeriod)
}

// ClassifyTrend is Bullish only when price is strictly above the average.
func ClassifyTrend(price, sma float64) model.Trend {
	if price > sma {
		return model.TrendBullish
	}
	return model.TrendBearish
}

func extractCloses(bars []model.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
