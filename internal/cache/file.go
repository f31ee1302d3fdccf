package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const entryFile = "%s.json" // keyed by hash

// FileStore keeps one JSON file per key under a directory.
type FileStore struct {
	dir string
	now func() time.Time
}

// fileEntry is the on-disk shape of a cached value.
type fileEntry struct {
	Key       string          `json:"key"`
	ExpiresAt time.Time       `json:"expires_at"`
	Value     json.RawMessage `json:"value"`
}

// NewFileStore creates a FileStore rooted at the given directory.
// If dir is empty, it defaults to ~/.cache/imsakiyah/.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine cache directory: %w", err)
		}
		dir = filepath.Join(base, "imsakiyah")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &FileStore{dir: dir, now: time.Now}, nil
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

// hashKey turns an arbitrary key into a short file-name-safe token.
func hashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", h[:8])
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, fmt.Sprintf(entryFile, hashKey(key)))
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, ErrMiss
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, ErrMiss
	}

	// A hash collision or an expired entry is as good as no entry.
	if entry.Key != key || !s.now().Before(entry.ExpiresAt) {
		return nil, ErrMiss
	}

	return entry.Value, nil
}

// Set stores value, which must be valid JSON, for ttl.
func (s *FileStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := fileEntry{
		Key:       key,
		ExpiresAt: s.now().Add(ttl),
		Value:     value,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}
