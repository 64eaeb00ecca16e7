package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"FinDash/internal/domain/models"
	domrepo "FinDash/internal/domain/repository"
	applogger "FinDash/pkg/logger"
)

const DefaultRankingLimit = 10

// Scores keeps the mini-game score boards.
type Scores struct {
	store     domrepo.ScoreStore
	publisher domrepo.EventPublisher
	l         *applogger.Logger
	now       func() time.Time
}

func NewScores(store domrepo.ScoreStore, publisher domrepo.EventPublisher, l *applogger.Logger) *Scores {
	return &Scores{store: store, publisher: publisher, l: l.With("scores"), now: time.Now}
}

// Save records one score for gameType.
func (s *Scores) Save(ctx context.Context, gameType, id, mode string, score float64) error {
	if strings.TrimSpace(gameType) == "" || strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: gameType and id are required", ErrInvalidArgument)
	}
	now := s.now()
	entry := models.GameScore{
		ID:        id,
		Mode:      mode,
		Score:     score,
		Timestamp: now.Format(time.RFC3339),
	}
	if err := s.store.Add(ctx, gameType, entry); err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	ev := models.Event{
		Type:    models.EventScoreSaved,
		Payload: map[string]interface{}{"gameType": gameType, "score": entry},
		At:      now.UTC(),
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.l.Warn("publish score failed", applogger.Error(err))
	}
	return nil
}

// Board returns only gameType's board when it exists, otherwise every board.
func (s *Scores) Board(ctx context.Context, gameType string) (models.ScoreBoard, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	if scores, ok := all[gameType]; gameType != "" && ok {
		return models.ScoreBoard{gameType: scores}, nil
	}
	return all, nil
}

// Ranking returns the best limit scores of gameType, optionally for one mode.
func (s *Scores) Ranking(ctx context.Context, gameType, mode string, limit int) ([]models.GameScore, error) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.GameScore, 0, len(all[gameType]))
	for _, sc := range all[gameType] {
		if mode == "" || sc.Mode == mode {
			out = append(out, sc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
