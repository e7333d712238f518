package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileBackend persists each key as a JSON file under a state directory. Read
// and write failures degrade to "no data" rather than surfacing.
type FileBackend struct {
	mu       sync.Mutex
	basePath string
}

// NewFileBackend initializes a FileBackend rooted at basePath.
func NewFileBackend(basePath string) (*FileBackend, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("store: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &FileBackend{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (b *FileBackend) BasePath() string {
	if b == nil {
		return ""
	}
	return b.basePath
}

func (b *FileBackend) Get(key string) ([]byte, bool) {
	path, err := b.pathFor(key)
	if err != nil {
		return nil, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (b *FileBackend) Set(key string, value []byte) {
	path, err := b.pathFor(key)
	if err != nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return
	}
	_ = os.Rename(tmp, path)
}

func (b *FileBackend) Delete(key string) {
	path, err := b.pathFor(key)
	if err != nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_ = os.Remove(path)
}

// pathFor normalizes a key and prevents escaping the state root.
func (b *FileBackend) pathFor(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("store: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.Clean(key)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || strings.HasPrefix(cleaned, "../") || strings.Contains(cleaned, "/") {
		return "", errors.New("store: invalid key")
	}
	return filepath.Join(b.basePath, cleaned+".json"), nil
}
