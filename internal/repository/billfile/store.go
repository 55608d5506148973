// Package billfile persists rendered receipts as text files in one directory.
package billfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rentbill/internal/logger"
)

// Store writes receipts under dir.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created on first Save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the receipts directory.
func (s *Store) Dir() string { return s.dir }

// Save writes content to dir/name, replacing any existing file, and returns the path.
func (s *Store) Save(ctx context.Context, name string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create bills dir: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil { //nolint:gosec // receipts are meant to be shared
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	logger.FromContext(ctx).Debug("Receipt written",
		zap.String("path", path),
		zap.Int("bytes", len(content)),
	)
	return path, nil
}
