// internal/csvlog/csvlog.go
package csvlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
)

// Suffix names the daily log files: <YYYY-MM-DD>_Sanitrax.csv.
const Suffix = "_Sanitrax.csv"

// Log appends one raw register row per cycle to a daily CSV file (UTC days).
// Values are written exactly as read, before any correction.
type Log struct {
	dir string
}

func New(dir string) *Log {
	return &Log{dir: dir}
}

// Path returns the file a row at t lands in.
func (l *Log) Path(t time.Time) string {
	return filepath.Join(l.dir, t.UTC().Format("2006-01-02")+Suffix)
}

// Append writes one row; the header is written first when the file is new.
func (l *Log) Append(t time.Time, raw registers.Raw) error {
	t = t.UTC()
	path := l.Path(t)

	_, err := os.Stat(path)
	fresh := errors.Is(err, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("csvlog: open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if fresh {
		if err := w.Write(Header()); err != nil {
			return fmt.Errorf("csvlog: header: %w", err)
		}
	}
	if err := w.Write(Row(t, raw)); err != nil {
		return fmt.Errorf("csvlog: row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csvlog: flush %s: %w", path, err)
	}
	return nil
}

// Header is "Date", "Time (UTC)" followed by the register names in wire order.
func Header() []string {
	return append([]string{"Date", "Time (UTC)"}, registers.Names()...)
}

// Row renders one sample.
func Row(t time.Time, raw registers.Raw) []string {
	t = t.UTC()
	row := make([]string, 0, 2+len(raw))
	row = append(row, t.Format("2006-01-02"), t.Format("15:04:05"))
	for _, v := range raw {
		row = append(row, strconv.FormatUint(uint64(v), 10))
	}
	return row
}
