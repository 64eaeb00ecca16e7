package forecast

import (
	"math"
	"testing"

	"FinDash/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHandVerified(t *testing.T) {
	in := series(100, 102, 101, 105, 103, 108)

	l, err := Trace(in)
	require.NoError(t, err)
	assert.Equal(t, 1.5, l.ResistanceSlope)
	assert.Equal(t, 1.0, l.SupportSlope)

	f, err := Compute(in)
	require.NoError(t, err)

	assert.Equal(t, 107.75, f.TopValue)
	assert.Equal(t, 104.12, f.BottomValue)
	assert.Equal(t, 105.94, f.ExpectValue)
	assert.Equal(t, 129.62, f.AfterMonthExpectValue)
	assert.Equal(t, int64(108), f.NowValue)
	assert.Equal(t, 1.25, f.ExpectRatioValue)
	assert.Equal(t, 1.25, f.BlendedSlope)

	again, err := Compute(in)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}

func TestComputeTruncatesNowValue(t *testing.T) {
	f, err := Compute(series(10.2, 11.7, 12.9))
	require.NoError(t, err)
	assert.Equal(t, int64(12), f.NowValue)
	assert.Equal(t, 12.9, f.CurrentPrice)
}

func TestComputeRejectsDegenerateInput(t *testing.T) {
	_, err := Compute(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = Compute(series(1, 2))
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Compute(series(1, math.NaN(), 3))
	assert.Error(t, err)
}

func TestExpectRatioIsMeanOfBlendedSlopes(t *testing.T) {
	inputs := [][]models.PricePoint{
		series(100, 102, 101, 105, 103, 108),
		series(10, 8, 9, 6, 7, 4, 5, 3, 6),
		series(50, 52, 49, 55, 51, 58, 54, 60, 57, 56, 59, 62, 61),
	}
	for _, in := range inputs {
		l, err := Trace(in)
		require.NoError(t, err)
		f, err := Compute(in)
		require.NoError(t, err)

		blended := round2((l.ResistanceSlope + l.SupportSlope) / 2)
		assert.Equal(t, round2((blended+blended)/2), f.ExpectRatioValue)
	}
}

func TestSlope(t *testing.T) {
	s, err := Slope([]models.PricePoint{pt(1, 102), pt(3, 105)})
	require.NoError(t, err)
	assert.Equal(t, 1.5, s)

	s, err = Slope([]models.PricePoint{pt(0, 10), pt(1, 11), pt(3, 10)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)

	_, err = Slope([]models.PricePoint{pt(4, 1), pt(4, 2)})
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Slope([]models.PricePoint{pt(4, 1)})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestSlopeSymmetry(t *testing.T) {
	fwd := []models.PricePoint{pt(0, 100), pt(4, 103), pt(9, 117)}
	rev := make([]models.PricePoint, len(fwd))
	for i, p := range fwd {
		rev[len(fwd)-1-i] = models.PricePoint{Index: -p.Index, Value: p.Value}
	}

	a, err := Slope(fwd)
	require.NoError(t, err)
	b, err := Slope(rev)
	require.NoError(t, err)
	assert.InDelta(t, a, -b, 0.01)
}

func TestProjectAndMonthAhead(t *testing.T) {
	r := []models.PricePoint{pt(1, 102), pt(3, 105)}
	p := Project(r, 1.25, 5)
	assert.Equal(t, 107.5, p)
	assert.Equal(t, 131.25, MonthAhead(p, 1.25))
}

func TestRound2HalfEven(t *testing.T) {
	assert.Equal(t, 129.62, round2(129.625))
	assert.Equal(t, 104.12, round2(104.125))
	assert.Equal(t, 105.94, round2(105.9375))
	assert.Equal(t, -1.5, round2(-1.5))

	// stored just below the tie
	assert.Equal(t, 2.67, round2(2.675))
	assert.Equal(t, 1.01, round2(1.015))
	assert.Equal(t, -2.67, round2(-2.675))
	// stored just above the tie
	assert.Equal(t, 0.13, round2(0.125000000001))
	assert.Equal(t, 0.12, round2(0.125))
}

func TestZero(t *testing.T) {
	assert.Equal(t, models.Forecast{}, Zero())
}
