package repository

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"

	"FinDash/pkg/logger"
)

// HistoryFileStore keeps the buy history document in a single JSON file.
type HistoryFileStore struct {
	path string
	mu   sync.RWMutex
	log  *logger.Logger
}

func NewHistoryFileStore(dataDir string, l *logger.Logger) *HistoryFileStore {
	return &HistoryFileStore{
		path: filepath.Join(dataDir, "Json_Files", "history.txt"),
		log:  l.With("history_store"),
	}
}

// Read returns the stored document; a missing or unreadable file reads as empty.
func (s *HistoryFileStore) Read(_ context.Context) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := map[string]interface{}{}
	if err := readJSON(s.path, &data); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("history unreadable, returning empty", logger.Error(err))
		}
		return map[string]interface{}{}, nil
	}
	return data, nil
}

func (s *HistoryFileStore) Save(_ context.Context, data map[string]interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.path, data)
}
