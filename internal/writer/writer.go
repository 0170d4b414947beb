// internal/writer/writer.go
package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/tamzrod/sanitrax-ctrl/internal/snapshot"
)

// LocalWriter drops one JSON document per snapshot group into a directory,
// for consumption by a local REST front-end.
// Each file is replaced atomically; readers never see a partial document.
type LocalWriter struct {
	dir string
}

func NewLocal(dir string) *LocalWriter {
	return &LocalWriter{dir: dir}
}

// Write attempts every file; failures are aggregated, not short-circuited.
func (w *LocalWriter) Write(ctx context.Context, s *snapshot.Snapshot) error {
	var errs error

	if err := w.writeJSON("modbus", s.Registers); err != nil {
		errs = multierr.Append(errs, err)
	}
	for _, g := range groups(s) {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		if err := w.writeJSON(g.file, g.value); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (w *LocalWriter) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("writer: encode %s: %w", name, err)
	}
	data = append(data, '\n')

	path := filepath.Join(w.dir, name+".json")
	tmp, err := os.CreateTemp(w.dir, "."+name+".json.tmp-*")
	if err != nil {
		return fmt.Errorf("writer: %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writer: %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writer: %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writer: %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writer: %s: %w", path, err)
	}
	return nil
}
