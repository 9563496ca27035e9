package model

import "time"

// Bar represents one trading session.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// BarSeries holds one symbol's daily bars, oldest first.
type BarSeries struct {
	Symbol    string
	Bars      []Bar
	FetchedAt time.Time
}

// Len returns the number of bars in the series.
func (s *BarSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Last returns the bar n positions from the end (0 = most recent).
func (s *BarSeries) Last(n int) (Bar, bool) {
	i := s.Len() - 1 - n
	if n < 0 || i < 0 {
		return Bar{}, false
	}
	return s.Bars[i], true
}

// Closes returns the close prices in chronological order.
func (s *BarSeries) Closes() []float64 {
	closes := make([]float64, s.Len())
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}
