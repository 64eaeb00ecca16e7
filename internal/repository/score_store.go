package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"FinDash/internal/domain/models"
	"FinDash/pkg/logger"
)

// ErrScoreFileCorrupt means the board file exists but cannot be decoded.
var ErrScoreFileCorrupt = errors.New("score file unreadable")

// ScoreFileStore keeps all game score boards in one JSON file.
type ScoreFileStore struct {
	path string
	mu   sync.Mutex
	log  *logger.Logger
}

func NewScoreFileStore(dataDir string, l *logger.Logger) *ScoreFileStore {
	return &ScoreFileStore{
		path: filepath.Join(dataDir, "Json_Files", "Game_Score", "game-store-db.txt"),
		log:  l.With("score_store"),
	}
}

func initialBoard() models.ScoreBoard {
	return models.ScoreBoard{
		models.GameSnake:         []models.GameScore{},
		models.GameSpaceShooting: []models.GameScore{},
	}
}

// All returns every board. A missing file is created with the default games;
// an unreadable one is reported and read as the default games.
func (s *ScoreFileStore) All(_ context.Context) (models.ScoreBoard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.load()
	if errors.Is(err, ErrScoreFileCorrupt) {
		s.log.Error("score file unreadable, serving defaults", logger.Error(err))
		return initialBoard(), nil
	}
	return board, err
}

// Add appends score to gameType and keeps the board sorted best first.
// It refuses to overwrite a file it cannot read.
func (s *ScoreFileStore) Add(_ context.Context, gameType string, score models.GameScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.load()
	if err != nil {
		s.log.Error("score not saved", logger.String("game", gameType), logger.Error(err))
		return err
	}
	scores := append(board[gameType], score)
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	board[gameType] = scores
	return writeJSON(s.path, board)
}

// load reads the board file. Callers hold s.mu.
func (s *ScoreFileStore) load() (models.ScoreBoard, error) {
	var board models.ScoreBoard
	err := readJSON(s.path, &board)
	switch {
	case err == nil:
		if board == nil {
			board = initialBoard()
		}
		return board, nil
	case errors.Is(err, fs.ErrNotExist):
		board = initialBoard()
		if err := writeJSON(s.path, board); err != nil {
			return nil, err
		}
		return board, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrScoreFileCorrupt, err)
	}
}
