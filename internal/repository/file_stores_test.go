package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinDash/internal/domain/models"
	"FinDash/pkg/logger"
)

func TestHistoryFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewHistoryFileStore(dir, logger.Nop())

	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	doc := map[string]interface{}{"삼성전자": []interface{}{"2024-03-01", 71000.0}}
	require.NoError(t, s.Save(ctx, doc))

	got, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	raw, err := os.ReadFile(filepath.Join(dir, "Json_Files", "history.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "삼성전자", "non-ASCII text is stored unescaped")
	assert.Contains(t, string(raw), "\n  \"", "two-space indent")
}

func TestHistoryFileStoreCorruptReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Json_Files", "history.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got, err := NewHistoryFileStore(dir, logger.Nop()).Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnalyzeFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewAnalyzeFileStore(dir, logger.Nop())

	day1 := time.Date(2024, 3, 9, 10, 0, 0, 0, time.Local)
	day2 := time.Date(2024, 3, 10, 10, 0, 0, 0, time.Local)

	ok, err := s.Exists(ctx, day1)
	require.NoError(t, err)
	assert.False(t, ok)

	data, err := s.Read(ctx, day1)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, data)

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Empty(t, latest.Data)
	assert.Nil(t, latest.Date)

	require.NoError(t, s.Replace(ctx, day1, []interface{}{"a"}))
	require.NoError(t, s.Replace(ctx, day2, []interface{}{"b", "c"}))

	ok, err = s.Exists(ctx, day1)
	require.NoError(t, err)
	assert.False(t, ok, "replacing removes older snapshots")

	_, err = os.Stat(filepath.Join(dir, "Json_Files", "Today_Analyze", "2024-3-10.txt"))
	require.NoError(t, err)

	data, err = s.Read(ctx, day2)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"b", "c"}, data)

	latest, err = s.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest.Date)
	assert.Equal(t, "2024-3-10", *latest.Date)
	assert.Equal(t, []interface{}{"b", "c"}, latest.Data)
}

func TestAnalyzeFileStoreLatestComparesDates(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "Json_Files", "Today_Analyze")
	require.NoError(t, os.MkdirAll(folder, 0o755))
	// "2024-9-1" sorts after "2024-10-1" as text
	require.NoError(t, os.WriteFile(filepath.Join(folder, "2024-9-1.txt"), []byte(`["sep"]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "2024-10-1.txt"), []byte(`["oct"]`), 0o644))

	latest, err := NewAnalyzeFileStore(dir, logger.Nop()).Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, latest.Date)
	assert.Equal(t, "2024-10-1", *latest.Date)
	assert.Equal(t, []interface{}{"oct"}, latest.Data)
}

func TestScoreFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewScoreFileStore(dir, logger.Nop())

	board, err := s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ScoreBoard{
		models.GameSnake:         {},
		models.GameSpaceShooting: {},
	}, board)

	_, err = os.Stat(filepath.Join(dir, "Json_Files", "Game_Score", "game-store-db.txt"))
	require.NoError(t, err, "missing board file is initialized")

	require.NoError(t, s.Add(ctx, models.GameSnake, models.GameScore{ID: "a", Mode: "easy", Score: 10}))
	require.NoError(t, s.Add(ctx, models.GameSnake, models.GameScore{ID: "b", Mode: "hard", Score: 30}))
	require.NoError(t, s.Add(ctx, models.GameSnake, models.GameScore{ID: "c", Mode: "easy", Score: 10}))
	require.NoError(t, s.Add(ctx, "Tetris", models.GameScore{ID: "d", Score: 1}))

	board, err = s.All(ctx)
	require.NoError(t, err)
	snake := board[models.GameSnake]
	require.Len(t, snake, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{snake[0].ID, snake[1].ID, snake[2].ID})
	assert.Len(t, board["Tetris"], 1)
}

func TestScoreFileStoreNullFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "Json_Files", "Game_Score", "game-store-db.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	s := NewScoreFileStore(dir, logger.Nop())
	require.NoError(t, s.Add(ctx, models.GameSnake, models.GameScore{ID: "a", Score: 1}))

	board, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, board[models.GameSnake], 1)
	assert.Contains(t, board, models.GameSpaceShooting)
}

func TestScoreFileStoreKeepsCorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "Json_Files", "Game_Score", "game-store-db.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"SnakeGame": [`), 0o644))

	s := NewScoreFileStore(dir, logger.Nop())

	board, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, board, 2, "reads fall back to the default games")

	err = s.Add(ctx, models.GameSnake, models.GameScore{ID: "a", Score: 1})
	assert.ErrorIs(t, err, ErrScoreFileCorrupt)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"SnakeGame": [`, string(data), "unreadable file is left untouched")
}
