package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"FinDash/internal/domain/models"
	domrepo "FinDash/internal/domain/repository"
	"FinDash/internal/service/market"
	"FinDash/pkg/util"
)

const barDateLayout = "2006-01-02"

// MarketData serves price history and listings.
type MarketData struct {
	bars     *BarLoader
	listings domrepo.ListingSource
	now      func() time.Time
}

func NewMarketData(bars *BarLoader, listings domrepo.ListingSource) *MarketData {
	return &MarketData{bars: bars, listings: listings, now: time.Now}
}

// StockData returns the daily bars of the last duration months (or weeks) keyed by date.
func (m *MarketData) StockData(ctx context.Context, symbol string, duration int, isMonth bool) (map[string]models.DailyBar, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrInvalidArgument)
	}
	if duration < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", ErrInvalidArgument)
	}
	days := duration * 7
	if isMonth {
		days = duration * 30
	}
	now := m.now()
	from := util.ValidDate(now.AddDate(0, 0, -days))

	bars, err := m.bars.Load(ctx, symbol, from, now)
	if err != nil {
		if errors.Is(err, market.ErrNoData) {
			return nil, fmt.Errorf("%w: no data for %s", ErrNotFound, symbol)
		}
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no data for %s", ErrNotFound, symbol)
	}

	out := make(map[string]models.DailyBar, len(bars))
	for _, b := range bars {
		out[b.Date.Format(barDateLayout)] = b
	}
	return out, nil
}

// StockList returns the listing of a market.
func (m *MarketData) StockList(ctx context.Context, mkt string) ([]models.Listing, error) {
	if strings.TrimSpace(mkt) == "" {
		return nil, fmt.Errorf("%w: market is required", ErrInvalidArgument)
	}
	rows, err := m.listings.Listing(ctx, mkt)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", mkt, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no listing for %s", ErrNotFound, mkt)
	}
	return rows, nil
}
