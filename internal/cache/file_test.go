package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// NewFileStore
// ---------------------------------------------------------------------------

func TestNewFileStore_ExplicitDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore(%q) error: %v", dir, err)
	}
	if s.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", s.Dir(), dir)
	}
}

func TestNewFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir", "cache")
	if _, err := NewFileStore(dir); err != nil {
		t.Fatalf("NewFileStore(%q) error: %v", dir, err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("directory %q was not created", dir)
	}
}

func TestNewFileStore_DefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	s, err := NewFileStore("")
	if err != nil {
		t.Fatalf("NewFileStore(\"\") error: %v", err)
	}
	if filepath.Base(s.Dir()) != "imsakiyah" {
		t.Errorf("default dir = %q, want it to end in imsakiyah", s.Dir())
	}
}

// ---------------------------------------------------------------------------
// Get / Set
// ---------------------------------------------------------------------------

func TestFileStore_SetGet(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	if err := s.Set(ctx, "provinsi", []byte(`["Aceh","Bali"]`), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, err := s.Get(ctx, "provinsi")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != `["Aceh","Bali"]` {
		t.Errorf("Get = %s, want %s", got, `["Aceh","Bali"]`)
	}
}

func TestFileStore_Miss(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())

	if _, err := s.Get(context.Background(), "nothing"); !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss, got %v", err)
	}
}

func TestFileStore_Expired(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	_ = s.Set(ctx, "jadwal", []byte(`{}`), time.Hour)

	now = now.Add(61 * time.Minute)
	if _, err := s.Get(ctx, "jadwal"); !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss for expired entry, got %v", err)
	}
}

func TestFileStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	ctx := context.Background()

	_ = s.Set(ctx, "geo", []byte(`{"lat":1}`), time.Hour)

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		os.WriteFile(filepath.Join(dir, e.Name()), []byte("not-json"), 0o644)
	}

	if _, err := s.Get(ctx, "geo"); !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss for corrupted file, got %v", err)
	}
}

func TestFileStore_KeysAreSeparate(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	_ = s.Set(ctx, "kabkota|Aceh", []byte(`["Kab. Aceh Besar"]`), time.Hour)
	_ = s.Set(ctx, "kabkota|Bali", []byte(`["Kab. Badung"]`), time.Hour)

	got, _ := s.Get(ctx, "kabkota|Aceh")
	if string(got) != `["Kab. Aceh Besar"]` {
		t.Errorf("Aceh entry = %s", got)
	}
}

// ---------------------------------------------------------------------------
// hashKey
// ---------------------------------------------------------------------------

func TestHashKey_Deterministic(t *testing.T) {
	if k1, k2 := hashKey("jadwal|Aceh|Kota Banda Aceh"), hashKey("jadwal|Aceh|Kota Banda Aceh"); k1 != k2 {
		t.Errorf("hashKey not deterministic: %q != %q", k1, k2)
	}
}

func TestHashKey_DifferentInputs(t *testing.T) {
	keys := []string{
		hashKey("provinsi"),
		hashKey("kabkota|Aceh"),
		hashKey("kabkota|Bali"),
		hashKey("jadwal|Aceh|Kota Banda Aceh"),
		hashKey("geo"),
	}
	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate cache key: %q", k)
		}
		seen[k] = true
	}
}

func TestHashKey_Length(t *testing.T) {
	// 8 bytes -> 16 hex chars
	if k := hashKey("provinsi"); len(k) != 16 {
		t.Errorf("hashKey length = %d, want 16", len(k))
	}
}
