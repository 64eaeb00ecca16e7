package usecase

import (
	"context"
	"time"

	"FinDash/internal/domain/models"
	domrepo "FinDash/internal/domain/repository"
)

// Documents serves the buy history and the analyze snapshots.
type Documents struct {
	history domrepo.HistoryStore
	analyze domrepo.AnalyzeStore
	now     func() time.Time
}

func NewDocuments(history domrepo.HistoryStore, analyze domrepo.AnalyzeStore) *Documents {
	return &Documents{history: history, analyze: analyze, now: time.Now}
}

func (d *Documents) History(ctx context.Context) (map[string]interface{}, error) {
	return d.history.Read(ctx)
}

func (d *Documents) SaveHistory(ctx context.Context, data map[string]interface{}) error {
	return d.history.Save(ctx, data)
}

// TodayAnalyze returns today's snapshot, or an empty list.
func (d *Documents) TodayAnalyze(ctx context.Context) ([]interface{}, error) {
	return d.analyze.Read(ctx, d.now())
}

func (d *Documents) LatestAnalyze(ctx context.Context) (models.AnalyzeSnapshot, error) {
	return d.analyze.Latest(ctx)
}
