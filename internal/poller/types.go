// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
)

// ReadBlock describes one Modbus read geometry.
// Geometry only: no semantics.
type ReadBlock struct {
	Address  uint16
	Quantity uint16
}

// FullBlock is the single read covering every polled register.
var FullBlock = ReadBlock{Address: 0, Quantity: uint16(registers.Count)}

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	At time.Time

	// Registers is valid only when Err is nil.
	Registers registers.Raw

	Err error // non-nil means the poll cycle failed
}
