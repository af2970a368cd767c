// Package connstore persists connection profiles to a versioned TOML
// file under the platform config directory.
package connstore

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sabiql/sabiql/internal/appstate"
)

const currentVersion = 2
const fileHeader = "# sabiql connection configuration\n# WARNING: passwords are stored in plain text\n\n"

// ErrVersionMismatch is returned when the file on disk carries a
// version other than currentVersion.
type ErrVersionMismatch struct {
	Found, Expected int
}

func (e ErrVersionMismatch) Error() string {
	return fmt.Sprintf("connections.toml version mismatch: found %d, expected %d", e.Found, e.Expected)
}

type fileFormat struct {
	Version     int                 `toml:"version"`
	Connections []profileEntry      `toml:"connections"`
}

type profileEntry struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	DSN  string `toml:"dsn"`
}

type versionCheck struct {
	Version int `toml:"version"`
}

// Store is a TOML-backed appstate.ConnectionStore.
type Store struct {
	path string
}

// New returns a Store reading/writing the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

var _ appstate.ConnectionStore = (*Store)(nil)

// Load reads all saved connection profiles. A missing file is not an
// error; it loads as an empty slice.
func (s *Store) Load() ([]appstate.ConnectionProfile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var vc versionCheck
	if _, err := toml.Decode(string(data), &vc); err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}
	if vc.Version != currentVersion {
		return nil, ErrVersionMismatch{Found: vc.Version, Expected: currentVersion}
	}

	var ff fileFormat
	if _, err := toml.Decode(string(data), &ff); err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}

	profiles := make([]appstate.ConnectionProfile, 0, len(ff.Connections))
	for _, e := range ff.Connections {
		profiles = append(profiles, appstate.ConnectionProfile{ID: e.ID, Name: e.Name, DSN: e.DSN})
	}
	return profiles, nil
}

// Save overwrites the stored profile set.
func (s *Store) Save(profiles []appstate.ConnectionProfile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	ff := fileFormat{Version: currentVersion, Connections: make([]profileEntry, 0, len(profiles))}
	for _, p := range profiles {
		ff.Connections = append(ff.Connections, profileEntry{ID: p.ID, Name: p.Name, DSN: p.DSN})
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(ff); err != nil {
		return err
	}

	content := fileHeader + buf.String()
	if err := os.WriteFile(s.path, []byte(content), 0600); err != nil {
		return err
	}
	return os.Chmod(s.path, 0600)
}

// Delete removes the profile with the given id.
func (s *Store) Delete(id string) error {
	profiles, err := s.Load()
	if err != nil {
		return err
	}
	kept := profiles[:0]
	found := false
	for _, p := range profiles {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("connection %q not found", id)
	}
	return s.Save(kept)
}
