package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// fileNameLayout is the compact digits-only checkout timestamp used as
// the receipt file name: yyyyMMddHHmm.
const fileNameLayout = "200601021504"

// Store persists a rendered receipt. Save returns the location the
// receipt was written to.
type Store interface {
	Save(rendered string, at time.Time) (string, error)
}

// FileStore writes receipts as plain text files under a directory,
// one file per checkout, named after the checkout timestamp.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Save(rendered string, at time.Time) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create receipts directory: %w", err)
	}

	path := filepath.Join(s.dir, at.Format(fileNameLayout)+".txt")
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}
	return path, nil
}
