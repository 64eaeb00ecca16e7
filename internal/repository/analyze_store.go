package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"FinDash/internal/domain/models"
	"FinDash/pkg/logger"
	"FinDash/pkg/util"
)

const analyzeExt = ".txt"

// AnalyzeFileStore keeps exactly one dated analyze snapshot in a folder.
type AnalyzeFileStore struct {
	dir string
	mu  sync.RWMutex
	log *logger.Logger
}

func NewAnalyzeFileStore(dataDir string, l *logger.Logger) *AnalyzeFileStore {
	return &AnalyzeFileStore{
		dir: filepath.Join(dataDir, "Json_Files", "Today_Analyze"),
		log: l.With("analyze_store"),
	}
}

func (s *AnalyzeFileStore) pathFor(day time.Time) string {
	return filepath.Join(s.dir, util.DayKey(day)+analyzeExt)
}

func (s *AnalyzeFileStore) Exists(_ context.Context, day time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.pathFor(day))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Read returns the snapshot saved on day, or an empty list.
func (s *AnalyzeFileStore) Read(_ context.Context, day time.Time) ([]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data []interface{}
	if err := readJSON(s.pathFor(day), &data); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("analyze snapshot unreadable", logger.Error(err))
		}
		return []interface{}{}, nil
	}
	if data == nil {
		data = []interface{}{}
	}
	return data, nil
}

// Latest returns the newest snapshot by the date in its file name.
func (s *AnalyzeFileStore) Latest(_ context.Context) (models.AnalyzeSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	empty := models.AnalyzeSnapshot{Data: []interface{}{}}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("analyze folder unreadable", logger.Error(err))
		}
		return empty, nil
	}

	var (
		latestKey string
		latestDay time.Time
	)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, analyzeExt) {
			continue
		}
		key := strings.TrimSuffix(name, analyzeExt)
		day, ok := util.ParseDayKey(key)
		if !ok {
			continue
		}
		if latestKey == "" || day.After(latestDay) {
			latestKey, latestDay = key, day
		}
	}
	if latestKey == "" {
		return empty, nil
	}

	var data []interface{}
	if err := readJSON(filepath.Join(s.dir, latestKey+analyzeExt), &data); err != nil {
		s.log.Warn("latest analyze snapshot unreadable", logger.String("date", latestKey), logger.Error(err))
		return empty, nil
	}
	if data == nil {
		data = []interface{}{}
	}
	return models.AnalyzeSnapshot{Data: data, Date: &latestKey}, nil
}

// Replace removes every existing snapshot and writes data as the snapshot of day.
func (s *AnalyzeFileStore) Replace(_ context.Context, day time.Time, data []interface{}) error {
	if data == nil {
		data = []interface{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("list analyze folder: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("remove old snapshot: %w", err)
		}
	}
	return writeJSON(s.pathFor(day), data)
}
