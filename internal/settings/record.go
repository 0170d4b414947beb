// internal/settings/record.go
package settings

import (
	"encoding/json"
	"fmt"

	"github.com/tamzrod/sanitrax-ctrl/internal/decode"
	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
)

// Record is the configurable register block, indexed from registers.SettingsFirst.
// Values are sign-corrected (antifreeze temperatures may be negative).
type Record [registers.SettingsCount]int64

// FromNormalized extracts the configurable block of one poll cycle.
func FromNormalized(n decode.Normalized) Record {
	var rec Record
	for i, r := range registers.Settings() {
		rec[i] = n[r].Int()
	}
	return rec
}

func (rec Record) Get(r registers.Register) int64 {
	return rec[int(r-registers.SettingsFirst)]
}

func (rec *Record) Set(r registers.Register, v int64) {
	rec[int(r-registers.SettingsFirst)] = v
}

// Diff returns the registers whose values differ, in wire order.
func (rec Record) Diff(other Record) []registers.Register {
	var out []registers.Register
	for i, r := range registers.Settings() {
		if rec[i] != other[i] {
			out = append(out, r)
		}
	}
	return out
}

// Words encodes the record for a multi-register write.
// Negative values go out as two's complement.
func (rec Record) Words() []uint16 {
	out := make([]uint16, len(rec))
	for i, v := range rec {
		out[i] = uint16(v)
	}
	return out
}

// MarshalJSON emits {name: value}. Keys come out sorted.
func (rec Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]int64, len(rec))
	for i, r := range registers.Settings() {
		m[r.Name()] = rec[i]
	}
	return json.Marshal(m)
}

// UnmarshalJSON requires exactly the configurable key set.
func (rec *Record) UnmarshalJSON(b []byte) error {
	var m map[string]int64
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	var out Record
	for i, r := range registers.Settings() {
		v, ok := m[r.Name()]
		if !ok {
			return fmt.Errorf("settings: missing key %q", r.Name())
		}
		out[i] = v
		delete(m, r.Name())
	}
	for k := range m {
		return fmt.Errorf("settings: unexpected key %q", k)
	}

	*rec = out
	return nil
}
