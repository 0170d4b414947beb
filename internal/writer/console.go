// internal/writer/console.go
package writer

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tamzrod/sanitrax-ctrl/internal/decode"
	"github.com/tamzrod/sanitrax-ctrl/internal/gps"
	"github.com/tamzrod/sanitrax-ctrl/internal/snapshot"
)

// ConsoleWriter prints a human-readable dump of the snapshot.
type ConsoleWriter struct {
	out io.Writer
}

func NewConsole(out io.Writer) *ConsoleWriter {
	return &ConsoleWriter{out: out}
}

func (w *ConsoleWriter) Write(_ context.Context, s *snapshot.Snapshot) error {
	bw := bufio.NewWriter(w.out)

	regs, err := json.Marshal(s.Registers)
	if err != nil {
		return fmt.Errorf("writer: console: %w", err)
	}
	fmt.Fprintf(bw, "%s\n", regs)

	for _, g := range groups(s) {
		fmt.Fprintf(bw, "\n========== %s ==========\n", g.banner)
		for _, f := range fields(g.value) {
			fmt.Fprintf(bw, "%s:  %v\n", f.Key, f.Value)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writer: console: %w", err)
	}
	return nil
}

// fields flattens a group value into printable key/value pairs.
func fields(v any) decode.Object {
	switch t := v.(type) {
	case decode.Flags:
		return t.Object()
	case decode.Object:
		return t.Dedup()
	case gps.Fix:
		obj := decode.Object{
			{Key: "Latitude", Value: t.Latitude},
			{Key: "Longitude", Value: t.Longitude},
			{Key: "Time", Value: t.Time},
		}
		if t.Altitude != nil {
			obj = append(obj, decode.Field{Key: "Altitude", Value: t.Altitude})
		}
		return obj
	default:
		return decode.Object{{Key: "value", Value: v}}
	}
}
