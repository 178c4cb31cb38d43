package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/Khangithub17/real-estate-project/internal/shared/infra/storage"
)

// RecordingFileStore records Put and Remove calls so tests can assert on
// the cascade cleanup without touching a real backend.
type RecordingFileStore struct {
	mu      sync.Mutex
	stored  []string
	removed []string
}

var _ storage.FileStore = (*RecordingFileStore)(nil)

func NewRecordingFileStore() *RecordingFileStore {
	return &RecordingFileStore{}
}

func (s *RecordingFileStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored = append(s.stored, key)
	return "/" + key, nil
}

func (s *RecordingFileStore) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, path)
	return nil
}

func (s *RecordingFileStore) Removed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.removed...)
}

func (s *RecordingFileStore) Stored() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.stored...)
}
