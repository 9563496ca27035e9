package model

// Trend is the moving-average trend classification. There is no neutral state.
type Trend string

const (
	TrendBullish Trend = "BULLISH"
	TrendBearish Trend = "BEARISH"
)

// Label returns the display name of the trend.
func (t Trend) Label() string {
	if t == TrendBullish {
		return "Bullish"
	}
	return "Bearish"
}

// PivotLevels holds classic floor-trader pivot levels.
// Supports and Resistances are ordered nearest first (S1/R1 at index 0).
type PivotLevels struct {
	Pivot       float64
	Supports    [3]float64
	Resistances [3]float64
}

// PriceRange is the high/low envelope over a window of bars.
type PriceRange struct {
	Days int
	High float64
	Low  float64
}

// AnalysisResult is the per-symbol output of the indicator engine.
type AnalysisResult struct {
	Symbol        string
	CurrentPrice  float64
	PreviousClose float64
	SMA50         float64
	Trend         Trend
	PercentChange *float64 // nil when it cannot be computed
	Levels        PivotLevels
	Range         *PriceRange
}

// Supports returns S1..S3.
func (r *AnalysisResult) Supports() [3]float64 { return r.Levels.Supports }

// Resistances returns R1..R3.
func (r *AnalysisResult) Resistances() [3]float64 { return r.Levels.Resistances }
