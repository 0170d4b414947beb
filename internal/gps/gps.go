// internal/gps/gps.go
package gps

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// Sentinel values reported when no fix is available.
const (
	Unknown     = "Unknown"
	UnknownTime = "1900-01-01 00:00:00"
)

// Fix is the last position written by the external GPS collector.
// Field values are passed through as the collector wrote them.
type Fix struct {
	Latitude  any `json:"Latitude"`
	Longitude any `json:"Longitude"`
	Time      any `json:"Time"`
	Altitude  any `json:"Altitude,omitempty"`
}

// UnknownFix is the sentinel fix. It has no altitude.
func UnknownFix() Fix {
	return Fix{Latitude: Unknown, Longitude: Unknown, Time: UnknownTime}
}

// Location renders "lat,lon".
func (f Fix) Location() string {
	return fmt.Sprintf("%v,%v", f.Latitude, f.Longitude)
}

// Known reports whether the fix came from the collector.
func (f Fix) Known() bool {
	return !isUnknown(f.Latitude) || !isUnknown(f.Longitude)
}

func isUnknown(v any) bool {
	s, ok := v.(string)
	return ok && s == Unknown
}

// Reader loads the collector's output file. It never fails the cycle.
type Reader struct {
	path string
	log  *zap.Logger
}

func NewReader(path string, log *zap.Logger) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reader{path: path, log: log}
}

// Read returns the current fix, or the sentinel when the file is absent or unreadable.
func (r *Reader) Read() Fix {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.log.Warn("gps: read failed", zap.String("path", r.path), zap.Error(err))
		}
		return UnknownFix()
	}

	var f Fix
	if err := json.Unmarshal(data, &f); err != nil {
		r.log.Warn("gps: malformed fix", zap.String("path", r.path), zap.Error(err))
		return UnknownFix()
	}
	return f
}
