// internal/decode/fault.go
package decode

import (
	"errors"
	"fmt"

	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
)

// ErrUnknownFaultCode is returned when a drive reports a code missing from
// the fault table. It indicates a firmware/table mismatch and MUST NOT be masked.
var ErrUnknownFaultCode = errors.New("decode: unknown pump fault code")

// FaultDescriptor is the resolved fault of one pump.
type FaultDescriptor struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// FaultInput is everything the resolver looks at for one pump.
type FaultInput struct {
	CommError bool
	Timeout   bool
	Overheat  bool

	// DeviceFault confirms the drive fault register is active.
	DeviceFault bool
	DeviceCode  int
}

// ResolveFault applies the pump fault precedence. First match wins:
//
//	comm error -> -1, timeout -> -2, overheat -> -3,
//	device fault bit clear -> 0 (stale register suppressed),
//	otherwise the device code as reported.
//
// Internally detected failures are never masked by a device code.
func ResolveFault(in FaultInput) (FaultDescriptor, error) {
	code := in.DeviceCode

	switch {
	case in.CommError:
		code = registers.FaultCodeNoComm
	case in.Timeout:
		code = registers.FaultCodeTimeout
	case in.Overheat:
		code = registers.FaultCodeOverheat
	case !in.DeviceFault:
		code = registers.FaultCodeOK
	}

	desc, ok := registers.FaultDescription(code)
	if !ok {
		return FaultDescriptor{Code: code}, fmt.Errorf("%w: %d", ErrUnknownFaultCode, code)
	}
	return FaultDescriptor{Code: code, Description: desc}, nil
}

// ResolvePump wires one pump's fault-word bits and drive register into ResolveFault.
func ResolvePump(p registers.Pump, fs FlagSet, n Normalized) (FaultDescriptor, error) {
	fd, err := ResolveFault(FaultInput{
		CommError:   fs.Fault.Bit(p.CommErrorBit),
		Timeout:     fs.Fault.Bit(p.TimeoutBit),
		Overheat:    fs.Fault.Bit(p.OverheatBit),
		// Gate on the controller's fault word (PumpN_Fault), which latches the drive status Fault bit.
		DeviceFault: fs.Fault.Bit(p.FaultBit),
		DeviceCode:  int(n[p.Fault].Int()),
	})
	if err != nil {
		return fd, fmt.Errorf("pump %d: %w", p.Number, err)
	}
	return fd, nil
}

// ResolvePumps resolves both pumps. Any lookup failure aborts.
func ResolvePumps(fs FlagSet, n Normalized) ([2]FaultDescriptor, error) {
	var out [2]FaultDescriptor
	for i, p := range registers.Pumps {
		fd, err := ResolvePump(p, fs, n)
		if err != nil {
			return out, err
		}
		out[i] = fd
	}
	return out, nil
}
