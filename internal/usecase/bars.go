package usecase

import (
	"context"
	"fmt"
	"time"

	"FinDash/internal/domain/models"
	domrepo "FinDash/internal/domain/repository"
	"FinDash/pkg/cache"
	applogger "FinDash/pkg/logger"
	"FinDash/pkg/util"
)

// cachedBar keeps the date that DailyBar hides from JSON.
type cachedBar struct {
	Date time.Time `json:"date"`
	models.DailyBar
}

// BarLoader fetches daily bars through the cache and archives fresh fetches.
type BarLoader struct {
	prices  domrepo.PriceSource
	archive domrepo.PriceArchive
	cache   cache.Service
	ttl     time.Duration
	l       *applogger.Logger
}

func NewBarLoader(prices domrepo.PriceSource, archive domrepo.PriceArchive, c cache.Service, ttl time.Duration, l *applogger.Logger) *BarLoader {
	return &BarLoader{prices: prices, archive: archive, cache: c, ttl: ttl, l: l.With("bars")}
}

// Load returns the bars of symbol between the days of from and to.
func (b *BarLoader) Load(ctx context.Context, symbol string, from, to time.Time) ([]models.DailyBar, error) {
	key := cache.Key("bars", symbol, util.DayKey(from), util.DayKey(to))
	cached, err := cache.GetOrLoad(ctx, b.cache, key, b.ttl, func(ctx context.Context) ([]cachedBar, error) {
		bars, err := b.prices.DailyBars(ctx, symbol, from, to)
		if err != nil {
			return nil, err
		}
		if err := b.archive.StoreBars(ctx, symbol, bars); err != nil {
			b.l.Warn("archive bars failed", applogger.String("symbol", symbol), applogger.Error(err))
		}
		out := make([]cachedBar, len(bars))
		for i, bar := range bars {
			out[i] = cachedBar{Date: bar.Date, DailyBar: bar}
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load bars %s: %w", symbol, err)
	}

	bars := make([]models.DailyBar, len(cached))
	for i, c := range cached {
		bars[i] = c.DailyBar
		bars[i].Date = c.Date
	}
	return bars, nil
}
