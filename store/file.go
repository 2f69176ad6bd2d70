package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DefaultFile is where the file store keeps its state, relative to the working directory.
var DefaultFile = filepath.Join("data", "likes.json")

// FileStore keeps the whole mapping in one indented JSON file.
//
// There is no locking: two concurrent load-modify-save cycles can overwrite each
// other. Callers that need serialized writes wrap it (see services.LikeService).
type FileStore struct {
	fs     afero.Fs
	path   string
	logger *zap.Logger
}

func NewFileStore(fsys afero.Fs, path string, logger *zap.Logger) *FileStore {
	if path == "" {
		path = DefaultFile
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{fs: fsys, path: path, logger: logger}
}

func (s *FileStore) Path() string {
	return s.path
}

// LoadAll never fails: a missing, unreadable or corrupt file reads as no likes yet.
func (s *FileStore) LoadAll(_ context.Context) (Counts, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("likes file not found, starting empty", zap.String("path", s.path))
		} else {
			s.logger.Warn("read likes file", zap.String("path", s.path), zap.Error(err))
		}
		return Counts{}, nil
	}

	var counts Counts
	if err := json.Unmarshal(data, &counts); err != nil {
		s.logger.Warn("decode likes file", zap.String("path", s.path), zap.Error(err))
		return Counts{}, nil
	}
	if counts == nil {
		counts = Counts{}
	}
	return counts, nil
}

// SaveAll replaces the file contents in full.
func (s *FileStore) SaveAll(_ context.Context, counts Counts) error {
	if counts == nil {
		counts = Counts{}
	}
	data, err := json.MarshalIndent(counts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode likes: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create likes dir: %w", err)
		}
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("write likes file: %w", err)
	}
	return nil
}
