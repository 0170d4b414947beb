// internal/settings/store.go
package settings

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/settings-v1.json
var settingsSchemaJSON string

var (
	// ErrNotFound means no settings file exists yet (first run).
	ErrNotFound = errors.New("settings: not found")

	// ErrCorrupt means the file exists but does not parse or violates the schema.
	ErrCorrupt = errors.New("settings: corrupt")
)

// Store persists the setpoint record as a JSON object on disk.
type Store struct {
	path   string
	schema *jsonschema.Schema
}

func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("settings: path required")
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("settings-v1.json", strings.NewReader(settingsSchemaJSON)); err != nil {
		return nil, fmt.Errorf("settings: add schema resource: %w", err)
	}
	schema, err := compiler.Compile("settings-v1.json")
	if err != nil {
		return nil, fmt.Errorf("settings: compile schema: %w", err)
	}

	return &Store{path: path, schema: schema}, nil
}

func (s *Store) Path() string { return s.path }

// Load reads the persisted record.
// A missing file is ErrNotFound; anything unreadable as a record is ErrCorrupt.
func (s *Store) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("settings: read %s: %w", s.path, err)
	}
	return s.Parse(data)
}

// Parse validates a JSON document against the settings schema and decodes it.
// Used for the persisted file and for remotely supplied settings alike.
func (s *Store) Parse(data []byte) (Record, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := s.schema.Validate(doc); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return rec, nil
}

// Save writes the record (sorted keys, 4-space indent) via temp file + rename.
func (s *Store) Save(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

// Quarantine moves a corrupt file aside so it is never silently overwritten.
// Returns the new location.
func (s *Store) Quarantine(now time.Time) (string, error) {
	dst := fmt.Sprintf("%s.corrupt-%s", s.path, now.UTC().Format("20060102T150405Z"))
	if err := os.Rename(s.path, dst); err != nil {
		return "", fmt.Errorf("settings: quarantine %s: %w", s.path, err)
	}
	return dst, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("settings: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("settings: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("settings: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("settings: replace %s: %w", path, err)
	}
	return nil
}
