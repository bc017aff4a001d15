package wgconf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/plexsphere/wgpeer/internal/fsutil"
)

// DefaultFileMode is the mode for newly created configuration files.
const DefaultFileMode os.FileMode = 0o600

// FileStore reads and writes one configuration file per interface,
// at Dir/<interface>.conf.
type FileStore struct {
	Dir  string
	Perm os.FileMode
}

// NewFileStore returns a FileStore rooted at dir. A zero perm means DefaultFileMode.
func NewFileStore(dir string, perm os.FileMode) *FileStore {
	if perm == 0 {
		perm = DefaultFileMode
	}
	return &FileStore{Dir: dir, Perm: perm}
}

// Path returns the configuration file path for iface.
func (s *FileStore) Path(iface string) string {
	return filepath.Join(s.Dir, iface+".conf")
}

// Read returns the full configuration text for iface.
func (s *FileStore) Read(iface string) (string, error) {
	path := s.Path(iface)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("wgconf: read %s: %w", path, err)
	}
	return string(data), nil
}

// Write replaces the configuration text for iface atomically.
func (s *FileStore) Write(iface, text string) error {
	path := s.Path(iface)
	if err := fsutil.WriteFileAtomic(path, []byte(text), s.Perm); err != nil {
		return fmt.Errorf("wgconf: write %s: %w", path, err)
	}
	return nil
}

// Lock takes an exclusive advisory lock guarding iface's configuration file.
// The lock lives in a sibling file so the atomic rename in Write does not
// invalidate it.
func (s *FileStore) Lock(iface string) (unlock func() error, err error) {
	unlock, err = fsutil.Lock(filepath.Join(s.Dir, "."+iface+".conf.lock"))
	if err != nil {
		return nil, fmt.Errorf("wgconf: %w", err)
	}
	return unlock, nil
}
