package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"FinDash/internal/domain/models"
	"FinDash/internal/service/market"
	"FinDash/pkg/cache"
	"FinDash/pkg/logger"
	"FinDash/pkg/metrics"
)

type fakePrices struct {
	mu    sync.Mutex
	bars  map[string][]models.DailyBar
	calls int
	from  time.Time
	to    time.Time
}

func (f *fakePrices) DailyBars(_ context.Context, symbol string, from, to time.Time) ([]models.DailyBar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.from, f.to = from, to
	bars, ok := f.bars[symbol]
	if !ok {
		return nil, market.ErrNoData
	}
	return bars, nil
}

type fakeListings struct {
	rows []models.Listing
}

func (f *fakeListings) Listing(context.Context, string) ([]models.Listing, error) {
	return f.rows, nil
}

type fakeArchive struct {
	mu        sync.Mutex
	bars      int
	forecasts []models.ForecastRecord
}

func (f *fakeArchive) StoreBars(_ context.Context, _ string, bars []models.DailyBar) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bars += len(bars)
	return nil
}

func (f *fakeArchive) StoreForecast(_ context.Context, rec models.ForecastRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forecasts = append(f.forecasts, rec)
	return nil
}

func (f *fakeArchive) Close() error { return nil }

type fakePublisher struct {
	mu     sync.Mutex
	events []models.Event
}

func (f *fakePublisher) Publish(_ context.Context, ev models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, ev := range f.events {
		out[i] = ev.Type
	}
	return out
}

type fakeNotifier struct {
	enabled bool
	sent    []string
	err     error
}

func (f *fakeNotifier) Send(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeNotifier) Enabled() bool { return f.enabled }

// dailyBars builds one bar per day starting at start with the given closes.
func dailyBars(start time.Time, closes ...float64) []models.DailyBar {
	out := make([]models.DailyBar, len(closes))
	for i, c := range closes {
		out[i] = models.DailyBar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return out
}

func newMemCache(t *testing.T) *cache.MemoryCache {
	t.Helper()
	c := cache.NewMemoryCache()
	t.Cleanup(func() { _ = c.Close() })
	return c
}

type forecastFixture struct {
	prices    *fakePrices
	archive   *fakeArchive
	publisher *fakePublisher
	bars      *BarLoader
	f         *Forecaster
}

func newForecastFixture(t *testing.T, now time.Time, bars map[string][]models.DailyBar) *forecastFixture {
	t.Helper()
	fx := &forecastFixture{
		prices:    &fakePrices{bars: bars},
		archive:   &fakeArchive{},
		publisher: &fakePublisher{},
	}
	c := newMemCache(t)
	fx.bars = NewBarLoader(fx.prices, fx.archive, c, time.Minute, logger.Nop())
	fx.f = NewForecaster(fx.bars, fx.archive, fx.publisher, c, time.Minute, metrics.New(nil), logger.Nop())
	fx.f.now = func() time.Time { return now }
	return fx
}
