package analysis

import (
	"errors"
	"fmt"
	"math"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
)

// MinBars is the shortest series the engine will analyze.
const MinBars = calculator.TrendPeriod

var (
	// ErrInsufficientData means the series is too short; the symbol is skipped.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrMalformedBar means a bar carries a value that cannot take part in arithmetic.
	ErrMalformedBar = errors.New("malformed bar")
)

// Options tunes the supplementary parts of an analysis.
type Options struct {
	RangeDays int // 0 disables the high/low range
}

// Analyze computes price, trend, percent change and pivot levels for one
// symbol. It is a pure function of its inputs.
//
// Pivots come from the second-to-last bar, the most recently completed
// session; the last bar may still be trading.
func Analyze(series *model.BarSeries, opts Options) (*model.AnalysisResult, error) {
	if series.Len() < MinBars {
		return nil, fmt.Errorf("%w: %d bars, need %d", ErrInsufficientData, series.Len(), MinBars)
	}
	bars := series.Bars
	if err := checkFinite(bars[len(bars)-MinBars:]); err != nil {
		return nil, err
	}

	last, _ := series.Last(0)
	prev, _ := series.Last(1)

	sma, err := calculator.CalculateSMA50(bars)
	if err != nil {
		return nil, fmt.Errorf("sma50: %w", err)
	}

	res := &model.AnalysisResult{
		Symbol:        series.Symbol,
		CurrentPrice:  last.Close,
		PreviousClose: prev.Close,
		SMA50:         sma,
		Trend:         calculator.ClassifyTrend(last.Close, sma),
		Levels:        calculator.CalculatePivots(prev.High, prev.Low, prev.Close),
	}

	if pct, err := calculator.PercentChange(prev.Close, last.Close); err == nil {
		res.PercentChange = &pct
	}

	if opts.RangeDays > 0 {
		if r, err := calculator.CalculateRange(bars, opts.RangeDays); err == nil {
			res.Range = &r
		}
	}

	return res, nil
}

func checkFinite(bars []model.Bar) error {
	for _, b := range bars {
		for _, v := range [...]float64{b.Open, b.High, b.Low, b.Close} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w at %s", ErrMalformedBar, b.Time.Format("2006-01-02"))
			}
		}
	}
	return nil
}
