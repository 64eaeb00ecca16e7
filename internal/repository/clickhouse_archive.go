package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"FinDash/internal/domain/models"
	pkgch "FinDash/pkg/clickhouse"
	applogger "FinDash/pkg/logger"
)

// txRunner is the part of the ClickHouse client the archive needs.
type txRunner interface {
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error
	Database() string
	Close() error
}

// CHPriceArchive implements PriceArchive backed by ClickHouse.
type CHPriceArchive struct {
	db txRunner
	l  *applogger.Logger
}

func NewCHPriceArchive(ch *pkgch.Client, l *applogger.Logger) *CHPriceArchive {
	return &CHPriceArchive{db: ch, l: l.With("clickhouse_archive")}
}

func (s *CHPriceArchive) StoreBars(ctx context.Context, symbol string, bars []models.DailyBar) error {
	if len(bars) == 0 {
		return nil
	}
	start := time.Now()
	q := fmt.Sprintf(`INSERT INTO %s.daily_bars (symbol, day, open, high, low, close, volume, change) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, s.db.Database())

	err := s.db.InTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, q)
		if err != nil {
			return fmt.Errorf("prepare: %w", err)
		}
		defer stmt.Close()
		for _, b := range bars {
			if _, err := stmt.ExecContext(ctx, symbol, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume, b.Change); err != nil {
				return fmt.Errorf("append bar: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.l.Error("clickhouse store_bars error",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(bars)),
			applogger.Error(err),
		)
		return fmt.Errorf("store bars: %w", err)
	}
	s.l.Debug("clickhouse store_bars ok",
		applogger.String("symbol", symbol),
		applogger.Int("rows", len(bars)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return nil
}

func (s *CHPriceArchive) StoreForecast(ctx context.Context, rec models.ForecastRecord) error {
	q := fmt.Sprintf(`INSERT INTO %s.forecasts (symbol, term, computed_at, top_value, bottom_value, expect_value, after_month_expect_value, now_value, expect_ratio_value) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.db.Database())
	f := rec.Forecast

	err := s.db.InTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, q)
		if err != nil {
			return fmt.Errorf("prepare: %w", err)
		}
		defer stmt.Close()
		_, err = stmt.ExecContext(ctx, rec.Symbol, uint32(rec.Term), rec.ComputedAt,
			f.TopValue, f.BottomValue, f.ExpectValue, f.AfterMonthExpectValue, f.NowValue, f.ExpectRatioValue)
		return err
	})
	if err != nil {
		s.l.Error("clickhouse store_forecast error",
			applogger.String("symbol", rec.Symbol),
			applogger.Int("term", rec.Term),
			applogger.Error(err),
		)
		return fmt.Errorf("store forecast: %w", err)
	}
	return nil
}

func (s *CHPriceArchive) Close() error {
	return s.db.Close()
}

// NoopArchive discards everything. Used when ClickHouse is disabled.
type NoopArchive struct{}

func (NoopArchive) StoreBars(context.Context, string, []models.DailyBar) error { return nil }
func (NoopArchive) StoreForecast(context.Context, models.ForecastRecord) error { return nil }
func (NoopArchive) Close() error                                               { return nil }
