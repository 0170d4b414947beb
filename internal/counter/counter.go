// internal/counter/counter.go
package counter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// State is the persisted accumulator of the controller's pulse counter.
type State struct {
	Previous int64 `json:"previous"`
	Sum      int64 `json:"sum"`
}

// Advance folds one counter reading into the accumulator.
// A reading below the previous one means the controller counter restarted;
// the new reading is then counted from zero. Sum never decreases.
func (s State) Advance(pulse int64) State {
	if pulse < s.Previous {
		s.Previous = 0
	}
	s.Sum += pulse - s.Previous
	s.Previous = pulse
	return s
}

// Store keeps the accumulator in a small JSON file.
type Store struct {
	path string
	log  *zap.Logger
}

func NewStore(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{path: path, log: log}
}

func (s *Store) Path() string { return s.path }

// Load returns the persisted state.
// Missing or unreadable state starts from zero; only the latter is logged.
func (s *Store) Load() State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("water counter: read failed, starting from zero",
				zap.String("path", s.path), zap.Error(err))
		}
		return State{}
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		s.log.Warn("water counter: corrupt state, starting from zero",
			zap.String("path", s.path), zap.Error(err))
		return State{}
	}
	return st
}

// Save writes key-sorted, 4-space indented JSON via temp file + rename.
func (s *Store) Save(st State) error {
	data, err := json.MarshalIndent(st, "", "    ")
	if err != nil {
		return fmt.Errorf("water counter: encode: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("water counter: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("water counter: replace %s: %w", filepath.Base(s.path), err)
	}
	return nil
}

// Update advances the persisted accumulator by one reading and returns the new sum.
// The sum is valid even when persisting fails.
func (s *Store) Update(pulse int64) (int64, error) {
	st := s.Load().Advance(pulse)
	return st.Sum, s.Save(st)
}
