package repository

import (
	"context"
	"time"

	"FinDash/internal/domain/models"
)

// PriceSource loads daily bars for a symbol over [from, to].
type PriceSource interface {
	DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]models.DailyBar, error)
}

// ListingSource loads the listing of a market ("KRX", "S&P500", ...).
type ListingSource interface {
	Listing(ctx context.Context, market string) ([]models.Listing, error)
}

// PriceArchive keeps fetched bars and computed forecasts for later analysis.
type PriceArchive interface {
	StoreBars(ctx context.Context, symbol string, bars []models.DailyBar) error
	StoreForecast(ctx context.Context, rec models.ForecastRecord) error
	Close() error
}

// RankStore accumulates monthly rank statistics per region.
type RankStore interface {
	Accumulate(ctx context.Context, region, stockTag string, month time.Time, items []models.RankInput) error
	Report(ctx context.Context, region, stockTag string) (models.RankReport, error)
}

// HistoryStore keeps the free-form buy history document.
type HistoryStore interface {
	Read(ctx context.Context) (map[string]interface{}, error)
	Save(ctx context.Context, data map[string]interface{}) error
}

// AnalyzeStore keeps the dated "today analyze" snapshot.
type AnalyzeStore interface {
	Exists(ctx context.Context, day time.Time) (bool, error)
	Read(ctx context.Context, day time.Time) ([]interface{}, error)
	Latest(ctx context.Context) (models.AnalyzeSnapshot, error)
	Replace(ctx context.Context, day time.Time, data []interface{}) error
}

// ScoreStore keeps mini-game score boards.
type ScoreStore interface {
	All(ctx context.Context) (models.ScoreBoard, error)
	Add(ctx context.Context, gameType string, score models.GameScore) error
}

// EventPublisher hands domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, ev models.Event) error
	Close() error
}

// Metrics records service-level measurements.
type Metrics interface {
	RecordForecast(outcome string)
	RecordUpstream(source string, ok bool)
	RecordEvent(eventType string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
