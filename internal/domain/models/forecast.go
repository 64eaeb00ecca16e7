package models

import "time"

// Forecast is the support/resistance price projection for one instrument.
// Price fields are rounded to 2 decimals; NowValue is the truncated last close.
type Forecast struct {
	TopValue              float64 `json:"topValue"`
	BottomValue           float64 `json:"bottomValue"`
	ExpectValue           float64 `json:"expectValue"`
	AfterMonthExpectValue float64 `json:"afterMonthExpectValue"`
	NowValue              int64   `json:"nowValue"`
	ExpectRatioValue      float64 `json:"expectRatioValue"`

	// unrounded inputs kept for archiving and digests
	CurrentPrice float64 `json:"-"`
	BlendedSlope float64 `json:"-"`
}

// ForecastRecord is a computed forecast tagged with its request parameters.
type ForecastRecord struct {
	Symbol     string
	Term       int
	ComputedAt time.Time
	Forecast   Forecast
}
