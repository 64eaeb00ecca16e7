package features

import (
	"math"
	"time"

	"FinDash/internal/domain/models"
)

// TradingDaysPerYear annualizes daily volatility.
const TradingDaysPerYear = 252

// ClosePoints indexes the usable closes of bars sequentially, dropping
// non-finite and non-positive values the way a missing-row filter would.
func ClosePoints(bars []models.DailyBar) []models.PricePoint {
	out := make([]models.PricePoint, 0, len(bars))
	for _, b := range bars {
		c := b.Close
		if math.IsNaN(c) || math.IsInf(c, 0) || c <= 0 {
			continue
		}
		out = append(out, models.PricePoint{Index: len(out), Value: c})
	}
	return out
}

// LogReturns computes r_t = ln(P_t / P_{t-1}) over a point series.
// It returns nil if there are fewer than two points.
func LogReturns(points []models.PricePoint) []float64 {
	if len(points) < 2 {
		return nil
	}
	out := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1].Value, points[i].Value
		if prev <= 0 || cur <= 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, math.Log(cur/prev))
	}
	return out
}

// RealizedVolatility is the annualized sample deviation of the latest window of returns.
func RealizedVolatility(returns []float64, window int) float64 {
	if window <= 1 || len(returns) < window {
		return 0
	}
	var sum, sum2 float64
	for _, r := range returns[len(returns)-window:] {
		sum += r
		sum2 += r * r
	}
	n := float64(window)
	mean := sum / n
	variance := (sum2 - n*mean*mean) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance * TradingDaysPerYear)
}

// DayWindow truncates both bounds to local midnight; to is moved to the end of its day.
func DayWindow(from, to time.Time) (time.Time, time.Time) {
	y, m, d := from.Date()
	from = time.Date(y, m, d, 0, 0, 0, 0, from.Location())
	y, m, d = to.Date()
	to = time.Date(y, m, d, 23, 59, 59, 0, to.Location())
	return from, to
}
