// Package files stores uploaded receipt attachments on disk under
// opaque keys.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowedExts is the accepted set of receipt file extensions. Receipts
// are images; anything else is rejected before it reaches the store.
var allowedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Allowed reports whether fileName carries an accepted extension.
func Allowed(fileName string) bool {
	return allowedExts[strings.ToLower(filepath.Ext(fileName))]
}

// DiskStore persists attachment bytes under a directory, one file per
// key. Keys are UUIDs suffixed with the original extension so the
// content type survives round trips.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the directory if needed and returns a store
// rooted at it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the attachment and returns its key. The original file
// name only contributes its extension; the stored name is opaque.
func (s *DiskStore) Save(fileName string, r io.Reader) (string, error) {
	if !Allowed(fileName) {
		return "", fmt.Errorf("unsupported file type: %s", fileName)
	}
	key := uuid.New().String() + strings.ToLower(filepath.Ext(fileName))

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}
	return key, nil
}

// Path resolves a key to its on-disk path. Keys containing path
// separators are rejected so a crafted key cannot escape the root.
func (s *DiskStore) Path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) {
		return "", fmt.Errorf("invalid attachment key: %q", key)
	}
	path := filepath.Join(s.dir, key)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("attachment not found: %w", err)
	}
	return path, nil
}
