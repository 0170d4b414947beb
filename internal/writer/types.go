// internal/writer/types.go
package writer

import (
	"context"

	"github.com/tamzrod/sanitrax-ctrl/internal/snapshot"
)

// Writer delivers one assembled snapshot to a sink.
// Delivery only: no decoding, no state across cycles.
type Writer interface {
	Write(ctx context.Context, s *snapshot.Snapshot) error
}

// group is one named part of the snapshot, in publish order.
type group struct {
	file   string
	banner string
	value  any
}

// groups lists the snapshot parts shared by the local and console sinks.
func groups(s *snapshot.Snapshot) []group {
	return []group{
		{"top", "Input Top", s.Flags.InputTop},
		{"bottom", "Input Bottom", s.Flags.InputBottom},
		{"output", "Output", s.Flags.Output},
		{"output_mask", "Output Mask", s.Flags.OutputMask},
		{"output_fault", "Output Fault", s.Flags.OutputFault},
		{"fault", "Fault Registers", s.Flags.Fault},
		{"fault_mask", "Fault Mask", s.Flags.FaultMask},
		{"pump1", "Pump 1 Status", s.Pumps[0].StatusObject()},
		{"pump2", "Pump 2 Status", s.Pumps[1].StatusObject()},
		{"states", "States", s.States.Object()},
		{"antifreeze", "Antifreeze Status", s.Antifreeze},
		{"temperature", "Temperature Status", s.Temperature},
		{"gps", "GPS Readout", s.GPS},
	}
}
