package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinDash/internal/domain/models"
	"FinDash/internal/services/forecast"
)

var fixedNow = time.Date(2024, 6, 14, 15, 0, 0, 0, time.Local)

func TestForecastSkipTermDoesNoIO(t *testing.T) {
	fx := newForecastFixture(t, fixedNow, nil)

	res, err := fx.f.Forecast(context.Background(), "", forecast.SkipTerm)
	require.NoError(t, err)
	assert.Equal(t, models.Forecast{}, res)
	assert.Zero(t, fx.prices.calls)
	assert.Empty(t, fx.publisher.events)
}

func TestForecastRejectsInvalidInput(t *testing.T) {
	fx := newForecastFixture(t, fixedNow, nil)

	_, err := fx.f.Forecast(context.Background(), "AAPL", -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = fx.f.Forecast(context.Background(), " ", 4)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, fx.prices.calls)
}

func TestForecastComputesAndCaches(t *testing.T) {
	bars := map[string][]models.DailyBar{
		"AAPL": dailyBars(fixedNow.AddDate(0, 0, -5), 100, 102, 101, 105, 103, 108),
	}
	fx := newForecastFixture(t, fixedNow, bars)
	ctx := context.Background()

	res, err := fx.f.Forecast(ctx, "AAPL", 4)
	require.NoError(t, err)
	assert.Equal(t, 107.75, res.TopValue)
	assert.Equal(t, 104.12, res.BottomValue)
	assert.Equal(t, 105.94, res.ExpectValue)
	assert.Equal(t, 129.62, res.AfterMonthExpectValue)
	assert.Equal(t, int64(108), res.NowValue)
	assert.Equal(t, 1.25, res.ExpectRatioValue)

	again, err := fx.f.Forecast(ctx, "AAPL", 4)
	require.NoError(t, err)
	assert.Equal(t, res.ExpectValue, again.ExpectValue)

	assert.Equal(t, 1, fx.prices.calls, "second call is served from cache")
	assert.Equal(t, 6, fx.archive.bars)
	require.Len(t, fx.archive.forecasts, 1)
	assert.Equal(t, "AAPL", fx.archive.forecasts[0].Symbol)
	assert.Equal(t, 4, fx.archive.forecasts[0].Term)
	assert.Equal(t, []string{models.EventForecastComputed}, fx.publisher.types())
}

func TestForecastDropsMissingCloses(t *testing.T) {
	b := dailyBars(fixedNow.AddDate(0, 0, -7), 100, 0, 102, 101, 105, 103, 108)
	fx := newForecastFixture(t, fixedNow, map[string][]models.DailyBar{"X": b})

	res, err := fx.f.Forecast(context.Background(), "X", 4)
	require.NoError(t, err)
	assert.Equal(t, 105.94, res.ExpectValue)
}

func TestForecastInsufficientData(t *testing.T) {
	fx := newForecastFixture(t, fixedNow, map[string][]models.DailyBar{
		"TINY": dailyBars(fixedNow.AddDate(0, 0, -1), 10, 11),
	})

	_, err := fx.f.Forecast(context.Background(), "TINY", 1)
	assert.ErrorIs(t, err, forecast.ErrInsufficientData)
	assert.Empty(t, fx.publisher.events)
}

func TestForecastLeapDayLookback(t *testing.T) {
	now := time.Date(2024, 3, 7, 9, 0, 0, 0, time.Local)
	fx := newForecastFixture(t, now, map[string][]models.DailyBar{
		"X": dailyBars(now.AddDate(0, 0, -5), 100, 102, 101, 105, 103, 108),
	})

	_, err := fx.f.Forecast(context.Background(), "X", 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 28, 0, 0, 0, 0, time.Local), fx.prices.from)
}
