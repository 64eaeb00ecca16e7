// Package forecast projects support and resistance trend lines of a close
// price series into a short-term price forecast. It performs no I/O.
package forecast

import (
	"errors"
	"fmt"
	"math"

	"FinDash/internal/domain/models"
)

// SkipTerm is the lookback value meaning "no calculation requested".
const SkipTerm = 99999

var (
	ErrEmptySeries      = errors.New("empty price series")
	ErrInsufficientData = errors.New("insufficient data to extrapolate")
)

// Lines holds both reduced trend lines and their slopes.
type Lines struct {
	Support         Reduction
	Resistance      Reduction
	SupportSlope    float64
	ResistanceSlope float64
}

// Trace computes both trend lines of points.
func Trace(points []models.PricePoint) (Lines, error) {
	if len(points) == 0 {
		return Lines{}, ErrEmptySeries
	}
	if len(points) < 3 {
		return Lines{}, fmt.Errorf("%w: %d points", ErrInsufficientData, len(points))
	}
	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return Lines{}, fmt.Errorf("non-finite price at index %d", p.Index)
		}
	}

	l := Lines{
		Support:    ReduceSupport(points),
		Resistance: ReduceResistance(points),
	}
	var err error
	if l.ResistanceSlope, err = Slope(l.Resistance.Points); err != nil {
		return Lines{}, fmt.Errorf("resistance slope: %w", err)
	}
	if l.SupportSlope, err = Slope(l.Support.Points); err != nil {
		return Lines{}, fmt.Errorf("support slope: %w", err)
	}
	return l, nil
}

// Compute runs the reduction, extrapolation and aggregation over points.
func Compute(points []models.PricePoint) (models.Forecast, error) {
	l, err := Trace(points)
	if err != nil {
		return models.Forecast{}, err
	}

	res, sup := l.Resistance.Points, l.Support.Points
	lastIdx := points[len(points)-1].Index
	now := points[len(points)-1].Value

	// own-slope projections
	high := Project(res, l.ResistanceSlope, lastIdx)
	low := Project(sup, l.SupportSlope, lastIdx)

	blended := round2((l.ResistanceSlope + l.SupportSlope) / 2)
	resAvg := Project(res, blended, lastIdx)
	supAvg := Project(sup, blended, lastIdx)
	resMonth := MonthAhead(resAvg, blended)
	supMonth := MonthAhead(supAvg, blended)

	return models.Forecast{
		TopValue:              round2((resAvg + high) / 2),
		BottomValue:           round2((supAvg + low) / 2),
		ExpectValue:           round2((resAvg + supAvg + high + low) / 4),
		AfterMonthExpectValue: round2((resMonth + supMonth) / 2),
		NowValue:              int64(now),
		ExpectRatioValue:      round2((blended + blended) / 2),
		CurrentPrice:          now,
		BlendedSlope:          blended,
	}, nil
}

// Zero is the result returned for SkipTerm.
func Zero() models.Forecast {
	return models.Forecast{}
}
