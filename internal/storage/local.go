// Package storage writes uploaded album covers to local disk.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Local stores files under a single directory.
type Local struct {
	dir string
}

// NewLocal ensures the directory exists and returns a Local store.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Dir returns the directory files are written to.
func (l *Local) Dir() string {
	return l.dir
}

// Save writes the reader's contents under a timestamped name derived from
// the original filename and returns the stored name.
func (l *Local) Save(filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitize(filename))

	f, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return name, nil
}

// sanitize strips path elements and whitespace from a client filename.
func sanitize(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "upload"
	}
	return base
}
