package forecast

import (
	"math"
	"strconv"

	"FinDash/internal/domain/models"

	"github.com/shopspring/decimal"
)

// MonthAheadDays is the trading-day horizon of the month-ahead projection.
const MonthAheadDays = 19

// Slope is the two-point change rate through the first and last anchors of r.
func Slope(r []models.PricePoint) (float64, error) {
	if len(r) < 2 {
		return 0, ErrInsufficientData
	}
	first, last := r[0], r[len(r)-1]
	width := last.Index - first.Index
	if width == 0 {
		return 0, ErrInsufficientData
	}
	return round2((last.Value - first.Value) / float64(width)), nil
}

// Project extends the last anchor of r to lastIndex along slope.
func Project(r []models.PricePoint, slope float64, lastIndex int) float64 {
	end := r[len(r)-1]
	return end.Value + slope*float64(lastIndex-end.Index)
}

// MonthAhead moves a projection MonthAheadDays further along slope.
func MonthAhead(projection, slope float64) float64 {
	return round2(projection + slope*MonthAheadDays)
}

// round2 rounds the exact binary value of x half to even at 2 decimals,
// so 2.675 (stored as 2.67499...) becomes 2.67.
func round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	d, err := decimal.NewFromString(strconv.FormatFloat(x, 'f', 1074, 64))
	if err != nil {
		d = decimal.NewFromFloat(x)
	}
	f, _ := d.RoundBank(2).Float64()
	return f
}
