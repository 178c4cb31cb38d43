package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// localStore keeps files under a base directory, serving deployments without
// object storage. Public paths look like "/uploads/projects/<file>".
type localStore struct {
	baseDir    string
	publicBase string
}

var _ FileStore = (*localStore)(nil)

// NewLocalStore creates the base directory if needed.
func NewLocalStore(baseDir, publicBase string) (FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localStore{baseDir: baseDir, publicBase: strings.TrimSuffix(publicBase, "/")}, nil
}

func (s *localStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return s.publicBase + "/" + key, nil
}

func (s *localStore) Remove(ctx context.Context, path string) error {
	key := strings.TrimPrefix(path, s.publicBase+"/")
	key = strings.TrimPrefix(key, "/")
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
