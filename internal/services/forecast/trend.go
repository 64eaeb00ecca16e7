package forecast

import "FinDash/internal/domain/models"

// TrendSymbol classifies one step of a price series.
type TrendSymbol byte

const (
	Rising  TrendSymbol = '+'
	Falling TrendSymbol = '-'
	Flat    TrendSymbol = 'o'
)

func (s TrendSymbol) String() string { return string(s) }

// Polarity selects which reversals a reduction pass keeps.
type Polarity int

const (
	// Support keeps valleys (falling then rising).
	Support Polarity = iota
	// Resistance keeps peaks (rising then falling).
	Resistance
)

func (p Polarity) String() string {
	if p == Resistance {
		return "resistance"
	}
	return "support"
}

// Reduction is the outcome of reducing a series to its trend anchors.
type Reduction struct {
	// Points is the canonical reduced series, a subsequence of the input.
	Points []models.PricePoint
	// Trend is the step classification of the level that produced Points.
	Trend []TrendSymbol
	// Depth counts the passes that completed before reduction stopped.
	Depth int
	// Reduced is false when no pass completed and Points is the input itself.
	Reduced bool
}

// ReduceSupport collapses points to their valley anchors.
func ReduceSupport(points []models.PricePoint) Reduction {
	return Reduce(points, Support)
}

// ReduceResistance collapses points to their peak anchors.
func ReduceResistance(points []models.PricePoint) Reduction {
	return Reduce(points, Resistance)
}

// Reduce repeatedly applies reduction passes of the given polarity.
//
// A pass completes unless its input has two or fewer points or its trend holds
// exactly one rising or exactly one falling step. The deepest completed pass
// wins: its kept points when it kept more than one, otherwise the first and
// last points of the series it was given.
func Reduce(points []models.PricePoint, p Polarity) Reduction {
	res := Reduction{Points: points}

	var (
		src, out []models.PricePoint
		trend    []TrendSymbol
	)
	cur := points
	for len(cur) > 2 {
		kept, steps := reducePass(cur, p)
		if singleRun(steps) {
			break
		}
		src, out, trend = cur, kept, steps
		res.Depth++
		cur = kept
	}
	if res.Depth == 0 {
		return res
	}

	res.Reduced = true
	res.Trend = trend
	if len(out) > 1 {
		res.Points = out
	} else {
		res.Points = []models.PricePoint{src[0], src[len(src)-1]}
	}
	return res
}

// reducePass classifies every step of src and keeps the points where the
// wanted reversal happens, plus the last point when the series ends on a
// two-step run in either direction.
func reducePass(src []models.PricePoint, p Polarity) ([]models.PricePoint, []TrendSymbol) {
	enter, leave := Falling, Rising
	if p == Resistance {
		enter, leave = Rising, Falling
	}

	trend := make([]TrendSymbol, 0, len(src)-1)
	var kept []models.PricePoint
	last := len(src) - 1
	for i := 1; i <= last; i++ {
		trend = append(trend, classify(src[i-1].Value, src[i].Value))
		if i < 2 {
			continue
		}
		prev, cur := trend[i-2], trend[i-1]
		if prev == enter && cur == leave {
			kept = append(kept, src[i-1])
		}
		if i == last && prev == cur && prev != Flat {
			kept = append(kept, src[i])
		}
	}
	return kept, trend
}

func classify(prev, cur float64) TrendSymbol {
	switch {
	case prev > cur:
		return Falling
	case prev == cur:
		return Flat
	default:
		return Rising
	}
}

func singleRun(trend []TrendSymbol) bool {
	var up, down int
	for _, s := range trend {
		switch s {
		case Rising:
			up++
		case Falling:
			down++
		}
	}
	return up == 1 || down == 1
}
