// internal/decode/normalize.go
package decode

import "github.com/tamzrod/sanitrax-ctrl/internal/registers"

// Scaling holds the fixed-point constants of the analog pump sensors.
type Scaling struct {
	// Vacuum: (raw - VacuumRawOffset) / VacuumRawSpan - 1
	VacuumRawOffset float64
	VacuumRawSpan   float64

	// Pump temperature: raw * PumpTempRefCelsius / PumpTempRawRef.
	// Linear through the reference point only; no zero calibration exists.
	PumpTempRawRef     float64
	PumpTempRefCelsius float64
}

// DefaultScaling is the calibration shipped with the controller.
var DefaultScaling = Scaling{
	VacuumRawOffset:    4630,
	VacuumRawSpan:      14050,
	PumpTempRawRef:     8000,
	PumpTempRefCelsius: 60,
}

// TwosComplement reinterprets a 16-bit word above 32767 as its negative equivalent.
// Values already in the signed range are returned unchanged.
func TwosComplement(v int64) int64 {
	if v > 32767 {
		return v - 65536
	}
	return v
}

// Normalize applies sign correction, then scaling, to one raw block.
// Registers without a rule pass through as integers.
// No IO. No failure modes: block length is enforced by the type.
func Normalize(raw registers.Raw, sc Scaling) Normalized {
	var n Normalized

	for i, w := range raw {
		r := registers.Register(i)
		v := int64(w)
		if r.Signed() {
			v = TwosComplement(v)
		}
		n[r] = IntValue(v)
	}

	// External temperature is reported in tenths of a degree.
	n[registers.ExternalTemp] = FloatValue(float64(n[registers.ExternalTemp].Int()) / 10)

	for _, p := range registers.Pumps {
		n[p.Vac] = FloatValue(sc.vacuum(n[p.Vac].Int()))
		n[p.Temp] = FloatValue(sc.pumpTemp(n[p.Temp].Int()))
		n[p.MotorCurrent] = FloatValue(float64(n[p.MotorCurrent].Int()) / 10)
		n[p.MainsVolt] = FloatValue(float64(n[p.MainsVolt].Int()) / 10)
	}

	return n
}

func (sc Scaling) vacuum(raw int64) float64 {
	return (float64(raw)-sc.VacuumRawOffset)/sc.VacuumRawSpan - 1
}

func (sc Scaling) pumpTemp(raw int64) float64 {
	return float64(raw) * sc.PumpTempRefCelsius / sc.PumpTempRawRef
}
