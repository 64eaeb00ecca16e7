package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"FinDash/internal/domain/models"
	domrepo "FinDash/internal/domain/repository"
	"FinDash/internal/services/features"
	"FinDash/internal/services/forecast"
	"FinDash/pkg/cache"
	applogger "FinDash/pkg/logger"
	"FinDash/pkg/util"
)

// Forecaster runs the trend forecast over a symbol's recent closes.
type Forecaster struct {
	bars      *BarLoader
	archive   domrepo.PriceArchive
	publisher domrepo.EventPublisher
	cache     cache.Service
	ttl       time.Duration
	metrics   domrepo.Metrics
	l         *applogger.Logger
	now       func() time.Time
}

func NewForecaster(bars *BarLoader, archive domrepo.PriceArchive, publisher domrepo.EventPublisher, c cache.Service, ttl time.Duration, m domrepo.Metrics, l *applogger.Logger) *Forecaster {
	return &Forecaster{
		bars:      bars,
		archive:   archive,
		publisher: publisher,
		cache:     c,
		ttl:       ttl,
		metrics:   m,
		l:         l.With("forecast"),
		now:       time.Now,
	}
}

// Forecast computes the forecast of symbol over the last term weeks.
// forecast.SkipTerm short-circuits to the zero result without any I/O.
func (f *Forecaster) Forecast(ctx context.Context, symbol string, term int) (models.Forecast, error) {
	if term == forecast.SkipTerm {
		f.metrics.RecordForecast("skipped")
		return forecast.Zero(), nil
	}
	if strings.TrimSpace(symbol) == "" {
		return models.Forecast{}, fmt.Errorf("%w: symbol is required", ErrInvalidArgument)
	}
	if term < 0 {
		return models.Forecast{}, fmt.Errorf("%w: term must not be negative", ErrInvalidArgument)
	}

	start := time.Now()
	now := f.now()
	from := util.SubtractWeeks(now, term)
	key := cache.Key("forecast", symbol, term, util.DayKey(now))

	res, err := cache.GetOrLoad(ctx, f.cache, key, f.ttl, func(ctx context.Context) (models.Forecast, error) {
		return f.compute(ctx, symbol, term, from, now)
	})
	f.metrics.RecordLatency("forecast", time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, forecast.ErrInsufficientData) || errors.Is(err, forecast.ErrEmptySeries) {
			f.metrics.RecordForecast("insufficient")
		} else {
			f.metrics.RecordForecast("error")
		}
		return models.Forecast{}, err
	}
	f.metrics.RecordForecast("ok")
	return res, nil
}

func (f *Forecaster) compute(ctx context.Context, symbol string, term int, from, to time.Time) (models.Forecast, error) {
	bars, err := f.bars.Load(ctx, symbol, from, to)
	if err != nil {
		return models.Forecast{}, err
	}
	points := features.ClosePoints(bars)

	res, err := forecast.Compute(points)
	if err != nil {
		return models.Forecast{}, fmt.Errorf("forecast %s: %w", symbol, err)
	}
	f.metrics.RecordLastPrice(symbol, res.CurrentPrice)

	rec := models.ForecastRecord{Symbol: symbol, Term: term, ComputedAt: to.UTC(), Forecast: res}
	if err := f.archive.StoreForecast(ctx, rec); err != nil {
		f.l.Warn("archive forecast failed", applogger.String("symbol", symbol), applogger.Error(err))
	}
	ev := models.Event{Type: models.EventForecastComputed, Symbol: symbol, Payload: res, At: rec.ComputedAt}
	if err := f.publisher.Publish(ctx, ev); err != nil {
		f.l.Warn("publish forecast failed", applogger.String("symbol", symbol), applogger.Error(err))
	}

	f.l.Info("forecast computed",
		applogger.String("symbol", symbol),
		applogger.Int("term", term),
		applogger.Int("points", len(points)),
		applogger.Float64("expect", res.ExpectValue),
	)
	return res, nil
}
