// Package settings persists per-config viewer settings as one JSON file per config.
package settings

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.SettingsStore below a state directory.
type Store struct {
	mu   sync.RWMutex
	root string
}

// NewStore creates a Store rooted at the given state directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// SetRoot moves the store to another state directory.
func (s *Store) SetRoot(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = root
}

// Get retrieves the settings for a config name, or nil if none were stored.
func (s *Store) Get(config string) (*domain.PerConfigSettings, error) {
	filename := s.filename(config)
	//nolint:gosec // Path is constructed from the state directory and a hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrSettingsReadFailed.Error())
	}

	var out domain.PerConfigSettings
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSettingsUnmarshalFailed.Error())
	}
	return &out, nil
}

// Put stores the settings, replacing any previous file for the same config.
func (s *Store) Put(settings domain.PerConfigSettings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrSettingsMarshalFailed.Error())
	}

	filename := s.filename(settings.Config)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrSettingsCreateFailed.Error())
	}

	// Write through a temp file so a concurrent Get never sees a torn file.
	tmp := filename + ".tmp"
	//nolint:gosec // Path is constructed from the state directory and a hashed filename
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrSettingsWriteFailed.Error())
	}
	if err := os.Rename(tmp, filename); err != nil {
		return zerr.Wrap(err, domain.ErrSettingsWriteFailed.Error())
	}
	return nil
}

func (s *Store) filename(config string) string {
	s.mu.RLock()
	root := s.root
	s.mu.RUnlock()

	hash := sha256.Sum256([]byte(config))
	return filepath.Join(domain.SettingsPath(root), hex.EncodeToString(hash[:])+".json")
}
