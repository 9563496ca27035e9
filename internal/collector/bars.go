package collector

import (
	"fmt"
	"sort"
	"time"

	"StockPulse/internal/model"
)

// newBar builds a Bar from raw provider values. Every price goes through
// model.ToScalar; a missing volume is treated as zero.
func newBar(ts time.Time, open, high, low, close, volume interface{}) (model.Bar, error) {
	var (
		b   = model.Bar{Time: ts}
		err error
	)
	if b.Open, err = model.ToScalar(open); err != nil {
		return b, fmt.Errorf("open: %w", err)
	}
	if b.High, err = model.ToScalar(high); err != nil {
		return b, fmt.Errorf("high: %w", err)
	}
	if b.Low, err = model.ToScalar(low); err != nil {
		return b, fmt.Errorf("low: %w", err)
	}
	if b.Close, err = model.ToScalar(close); err != nil {
		return b, fmt.Errorf("close: %w", err)
	}
	if v, err := model.ToScalar(volume); err == nil {
		b.Volume = v
	}
	return b, nil
}

// finish sorts bars chronologically and trims to the most recent `days`.
func finish(bars []model.Bar, days int) []model.Bar {
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if days > 0 && len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars
}
