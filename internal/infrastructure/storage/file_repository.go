package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"TeleshopNews/internal/domain"
	"TeleshopNews/internal/ports"
)

// FileRepository persists the news collection as a single JSON document.
// Writes go through a temp file in the same directory followed by a rename,
// so concurrent readers never observe a partially written store.
type FileRepository struct {
	path string
}

var _ ports.NewsRepository = (*FileRepository)(nil)

// NewFileRepository wires the document path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Load reads the stored collection. A missing document is an empty store,
// not an error; an unparseable one reports domain.ErrStoreCorrupt.
func (r *FileRepository) Load(ctx context.Context) ([]domain.NewsItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", r.path, err)
	}

	var items []domain.NewsItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStoreCorrupt, r.path, err)
	}

	return items, nil
}

// Persist writes the collection atomically via temp-file-and-rename.
func (r *FileRepository) Persist(ctx context.Context, items []domain.NewsItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp store: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("swap store: %w", err)
	}

	return nil
}

// Stat reports whether the document exists and when it last changed.
func (r *FileRepository) Stat() (bool, time.Time) {
	info, err := os.Stat(r.path)
	if err != nil {
		return false, time.Time{}
	}
	return true, info.ModTime()
}
