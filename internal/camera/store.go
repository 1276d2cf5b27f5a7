package camera

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/atotto/clipboard"
)

// Store persists one Settings document as JSON. Load is tolerant: a missing
// or malformed file yields the defaults and a logged diagnostic, never an
// error, so a broken settings file cannot take a tool down.
type Store struct {
	path string

	mu  sync.Mutex
	cur Settings
}

// DefaultPath places the settings under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("camera: resolve config dir: %w", err)
	}
	return filepath.Join(dir, "rigbench", "camera.json"), nil
}

// NewStore opens a store at path. An empty path selects DefaultPath; if even
// that fails the store still works, it just cannot persist.
func NewStore(path string) *Store {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			log.Printf("camera: no settings path, persistence disabled: %v", err)
		}
		path = p
	}
	return &Store{path: path, cur: DefaultSettings()}
}

// Path returns the backing file location ("" when persistence is disabled).
func (s *Store) Path() string { return s.path }

// Load reads the persisted settings. Read or parse failures keep the
// defaults and log the cause.
func (s *Store) Load() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = DefaultSettings()
	if s.path == "" {
		return s.cur
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("camera: read settings: %v", err)
		}
		return s.cur
	}
	var st Settings
	if err := json.Unmarshal(raw, &st); err != nil {
		log.Printf("camera: parse settings, keeping defaults: %v", err)
		return s.cur
	}
	s.cur = st.Clamped()
	return s.cur
}

// Current returns the last loaded or saved settings.
func (s *Store) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Save clamps st, writes it back, and makes it current. Called on every
// settings change.
func (s *Store) Save(st Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = st.Clamped()
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.cur, "", "  ")
	if err != nil {
		return fmt.Errorf("camera: encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("camera: create settings dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("camera: write settings: %w", err)
	}
	return nil
}

// Reset restores and persists the defaults.
func (s *Store) Reset() (Settings, error) {
	def := DefaultSettings()
	if err := s.Save(def); err != nil {
		return def, err
	}
	return def, nil
}

// CopyJSON puts the current settings on the system clipboard.
func (s *Store) CopyJSON() error {
	s.mu.Lock()
	raw, err := json.MarshalIndent(s.cur, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("camera: encode settings: %w", err)
	}
	if err := clipboard.WriteAll(string(raw)); err != nil {
		return fmt.Errorf("camera: copy settings: %w", err)
	}
	return nil
}
