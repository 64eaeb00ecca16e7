package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"FinDash/internal/domain/models"
	domrepo "FinDash/internal/domain/repository"
	"FinDash/pkg/cache"
	applogger "FinDash/pkg/logger"
)

// Ranks accumulates ranked stock lists and reports the monthly statistics.
type Ranks struct {
	store         domrepo.RankStore
	analyze       domrepo.AnalyzeStore
	publisher     domrepo.EventPublisher
	cache         cache.Service
	lockTTL       time.Duration
	defaultRegion string
	mu            sync.Mutex
	l             *applogger.Logger
	now           func() time.Time
}

func NewRanks(store domrepo.RankStore, analyze domrepo.AnalyzeStore, publisher domrepo.EventPublisher, c cache.Service, lockTTL time.Duration, defaultRegion string, l *applogger.Logger) *Ranks {
	return &Ranks{
		store:         store,
		analyze:       analyze,
		publisher:     publisher,
		cache:         c,
		lockTTL:       lockTTL,
		defaultRegion: defaultRegion,
		l:             l.With("ranks"),
		now:           time.Now,
	}
}

// target validates the stock tag and resolves region, falling back to the default region.
func (r *Ranks) target(stockTag, region string) (string, error) {
	if strings.TrimSpace(stockTag) == "" {
		return "", fmt.Errorf("%w: stock is required", ErrInvalidArgument)
	}
	if err := models.ValidateStockTag(stockTag); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if region = strings.TrimSpace(region); region == "" {
		region = r.defaultRegion
	}
	if err := models.ValidateRegion(region); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return region, nil
}

// Save adds items to this month's statistics and stores them as today's analyze snapshot.
// It reports false without writing when today's snapshot already exists or
// another process holds the save lock.
func (r *Ranks) Save(ctx context.Context, stockTag string, raw []map[string]interface{}, region string) (bool, error) {
	region, err := r.target(stockTag, region)
	if err != nil {
		return false, err
	}
	items, err := models.ParseRankInputs(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	today := r.now()
	done, err := r.analyze.Exists(ctx, today)
	if err != nil {
		return false, fmt.Errorf("check today's snapshot: %w", err)
	}
	if done {
		r.l.Info("ranks already saved today", applogger.String("stock", stockTag))
		return false, nil
	}

	snapshot := make([]interface{}, len(raw))
	for i, item := range raw {
		snapshot[i] = item
	}
	err = cache.WithLock(ctx, r.cache, cache.Key("lock", "ranks", region), r.lockTTL, func() error {
		if err := r.store.Accumulate(ctx, region, stockTag, today, items); err != nil {
			return err
		}
		return r.analyze.Replace(ctx, today, snapshot)
	})
	if errors.Is(err, cache.ErrLocked) {
		r.l.Warn("rank save in progress elsewhere", applogger.String("region", region))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("save ranks: %w", err)
	}

	ev := models.Event{
		Type:    models.EventRanksSaved,
		Payload: map[string]interface{}{"stock": stockTag, "region": region, "items": len(items)},
		At:      today.UTC(),
	}
	if err := r.publisher.Publish(ctx, ev); err != nil {
		r.l.Warn("publish ranks failed", applogger.Error(err))
	}
	return true, nil
}

// Report returns the per-month and all-period statistics of stockTag.
func (r *Ranks) Report(ctx context.Context, stockTag, region string) (models.RankReport, error) {
	region, err := r.target(stockTag, region)
	if err != nil {
		return models.RankReport{}, err
	}
	rep, err := r.store.Report(ctx, region, stockTag)
	if err != nil {
		return models.RankReport{}, fmt.Errorf("rank report: %w", err)
	}
	return rep, nil
}
