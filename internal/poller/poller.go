// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
)

// ErrShortRead is returned when the device answers with a register count
// other than the one requested.
var ErrShortRead = errors.New("poller: register count mismatch")

// Client abstracts the Modbus operations needed against the controller.
type Client interface {
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error)   // FC 3
	WriteSingleRegister(addr, value uint16) error              // FC 6
	WriteMultipleRegisters(addr uint16, values []uint16) error // FC 16
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Read ReadBlock
}

// Poller is a dumb reader: one request per cycle, no retries.
type Poller struct {
	cfg    Config
	client Client
	now    func() time.Time
}

// New creates a poller with immutable config.
func New(cfg Config, client Client) (*Poller, error) {
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	if cfg.Read.Quantity != uint16(registers.Count) || cfg.Read.Address != 0 {
		return nil, fmt.Errorf("poller: read block must be 0+%d, got %d+%d",
			registers.Count, cfg.Read.Address, cfg.Read.Quantity)
	}
	return &Poller{cfg: cfg, client: client, now: time.Now}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
// The length contract is enforced here; downstream code indexes by offset.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{At: p.now()}

	rb := p.cfg.Read
	regs, err := p.client.ReadHoldingRegisters(rb.Address, rb.Quantity)
	if err != nil {
		res.Err = fmt.Errorf("poller: read %d+%d: %w", rb.Address, rb.Quantity, err)
		return res
	}
	if len(regs) != int(rb.Quantity) {
		res.Err = fmt.Errorf("%w: got=%d want=%d", ErrShortRead, len(regs), rb.Quantity)
		return res
	}

	raw, err := registers.RawFromSlice(regs)
	if err != nil {
		res.Err = err
		return res
	}

	// Commit only if the read succeeded
	res.Registers = raw
	return res
}
