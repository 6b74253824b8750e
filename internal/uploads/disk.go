// Package uploads keeps uploaded images on local disk.
package uploads

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore hands out collision-free paths under one directory. Stored paths
// are relative to the process working directory when dir is relative.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		return nil, errors.New("upload dir is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Dir() string {
	return s.dir
}

// NewPath returns "<dir>/<uuid>-<name>" where name is the base of the
// client's file name with path separators stripped.
func (s *DiskStore) NewPath(original string) string {
	return filepath.ToSlash(filepath.Join(s.dir, uuid.NewString()+"-"+cleanName(original)))
}

// Remove deletes a file previously placed by this store. Paths outside
// the store are ignored.
func (s *DiskStore) Remove(path string) error {
	if !s.owns(path) {
		return nil
	}

	err := os.Remove(filepath.FromSlash(path))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}

func (s *DiskStore) owns(path string) bool {
	rel, err := filepath.Rel(s.dir, filepath.FromSlash(path))
	if err != nil {
		return false
	}

	return rel != "." && !strings.HasPrefix(rel, "..")
}

func cleanName(original string) string {
	name := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	name = strings.TrimSpace(name)

	if name == "" || name == "." || name == "/" {
		return "upload"
	}

	return name
}
