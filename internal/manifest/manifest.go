// Package manifest reads and edits the project's package.json.
//
// Comments and trailing commas are tolerated via github.com/tidwall/jsonc.
// Edits go through github.com/tidwall/sjson, which replaces a value where it
// stands and leaves key order and indentation alone.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// DefaultFile is the manifest file name looked up in the project directory.
const DefaultFile = "package.json"

// Manifest is the subset of package.json the release stages use.
type Manifest struct {
	Name          string            `json:"name"`
	Version       string            `json:"version"`
	Private       bool              `json:"private,omitempty"`
	Scripts       map[string]string `json:"scripts,omitempty"`
	PublishConfig *PublishConfig    `json:"publishConfig,omitempty"`
}

// PublishConfig is the publishConfig block of package.json.
type PublishConfig struct {
	Registry string `json:"registry,omitempty"`
	Access   string `json:"access,omitempty"`
}

// HasScript reports whether a script with this name is defined.
func (m Manifest) HasScript(name string) bool {
	_, ok := m.Scripts[name]
	return ok
}

// Registry returns publishConfig.registry, or an empty string.
func (m Manifest) Registry() string {
	if m.PublishConfig == nil {
		return ""
	}
	return m.PublishConfig.Registry
}

// Store is the persisted manifest of the project being released.
type Store interface {
	// Read parses the manifest from disk.
	Read() (Manifest, error)
	// WriteVersion sets the version field in place.
	WriteVersion(version string) error
	// WritePublishConfig sets publishConfig.registry in place.
	WritePublishConfig(registry string) error
	// Revert discards working-tree edits to the manifest.
	Revert() error
	// Path returns the manifest file path.
	Path() string
}

// Restorer restores a tracked file to its committed content.
type Restorer interface {
	RestoreFile(path string) error
}

// Compile-time check that FileStore implements Store.
var _ Store = (*FileStore)(nil)

// FileStore is a Store backed by a package.json file.
type FileStore struct {
	path     string
	restorer Restorer
}

// NewFileStore returns a store for the manifest at path. Revert delegates
// to restorer, typically the git repository holding the file.
func NewFileStore(path string, restorer Restorer) *FileStore {
	return &FileStore{path: path, restorer: restorer}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Read() (Manifest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes package.json bytes. The version field is required.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Version == "" {
		return Manifest{}, errors.New("manifest has no version field")
	}
	return m, nil
}

func (s *FileStore) WriteVersion(version string) error {
	return s.edit(func(data []byte) ([]byte, error) {
		return SetPath(data, "version", version)
	})
}

func (s *FileStore) WritePublishConfig(registry string) error {
	return s.edit(func(data []byte) ([]byte, error) {
		return SetPath(data, "publishConfig.registry", registry)
	})
}

func (s *FileStore) Revert() error {
	if s.restorer == nil {
		return errors.New("manifest store has no restorer")
	}
	if err := s.restorer.RestoreFile(s.path); err != nil {
		return fmt.Errorf("reverting %s: %w", filepath.Base(s.path), err)
	}
	return nil
}

func (s *FileStore) edit(fn func([]byte) ([]byte, error)) error {
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	out, err := fn(data)
	if err != nil {
		return fmt.Errorf("editing manifest: %w", err)
	}
	if err := os.WriteFile(s.path, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
