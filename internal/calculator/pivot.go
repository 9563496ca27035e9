package calculator

import "StockPulse/internal/model"

// CalculatePivots applies the classic floor-trader formulas to one session's
// high, low and close.
func CalculatePivots(high, low, close float64) model.PivotLevels {
	p := (high + low + close) / 3
	spread := high - low
	return model.PivotLevels{
		Pivot: p,
		Supports: [3]float64{
			2*p - high,
			p - spread,
			low - 2*(high-p),
		},
		Resistances: [3]float64{
			2*p - low,
			p + spread,
			high + 2*(p-low),
		},
	}
}
