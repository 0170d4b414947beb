// internal/registers/states.go
package registers

import (
	"errors"
	"fmt"
)

// ErrStateOutOfRange is returned when a state register holds a value the
// firmware tables do not define. It indicates a firmware mismatch.
var ErrStateOutOfRange = errors.New("registers: state index out of range")

type BreaktankState uint16

const (
	BreaktankOff BreaktankState = iota
	BreaktankManual
	BreaktankFail
	BreaktankAutoEmpty
	BreaktankAutoLow
	BreaktankAutoNormal
	BreaktankAutoHigh
	BreaktankAutoOverflow
	BreaktankAutoTimeout
)

var breaktankNames = []string{
	"BREAKTANK_OFF",
	"BREAKTANK_MANUAL",
	"BREAKTANK_FAIL",
	"BREAKTANK_AUTO_EMPTY",
	"BREAKTANK_AUTO_LOW",
	"BREAKTANK_AUTO_NORMAL",
	"BREAKTANK_AUTO_HIGH",
	"BREAKTANK_AUTO_OVERFLOW",
	"BREAKTANK_AUTO_TIMEOUT",
}

func (s BreaktankState) String() string { return stateName("BreaktankState", breaktankNames, int64(s)) }

func ParseBreaktankState(raw int64) (BreaktankState, error) {
	return parseState[BreaktankState]("breaktank", breaktankNames, raw)
}

type HydrophoreState uint16

const (
	HydrophoreOff HydrophoreState = iota
	HydrophoreManual
	HydrophoreFail
	HydrophoreAutoOff
	HydrophoreAutoOn
	HydrophoreAutoPostrun
	HydrophoreAutoTimeout
)

var hydrophoreNames = []string{
	"HYDROPHORE_OFF",
	"HYDROPHORE_MANUAL",
	"HYDROPHORE_FAIL",
	"HYDROPHORE_AUTO_OFF",
	"HYDROPHORE_AUTO_ON",
	"HYDROPHORE_AUTO_POSTRUN",
	"HYDROPHORE_AUTO_TIMEOUT",
}

func (s HydrophoreState) String() string {
	return stateName("HydrophoreState", hydrophoreNames, int64(s))
}

func ParseHydrophoreState(raw int64) (HydrophoreState, error) {
	return parseState[HydrophoreState]("hydrophore", hydrophoreNames, raw)
}

type PumpState uint16

const (
	PumpOff PumpState = iota
	PumpManual
	PumpFail
	PumpAutoOff
	PumpAutoOn
	PumpAutoTimeout
)

var pumpNames = []string{
	"PUMP_OFF",
	"PUMP_MANUAL",
	"PUMP_FAIL",
	"PUMP_AUTO_OFF",
	"PUMP_AUTO_ON",
	"PUMP_AUTO_TIMEOUT",
}

func (s PumpState) String() string { return stateName("PumpState", pumpNames, int64(s)) }

func ParsePumpState(raw int64) (PumpState, error) {
	return parseState[PumpState]("pump", pumpNames, raw)
}

type FlushState uint16

const (
	FlushOff FlushState = iota
	FlushManual
	FlushAutoOn
	FlushAutoTimeout
)

var flushNames = []string{
	"FLUSH_OFF",
	"FLUSH_MANUAL",
	"FLUSH_AUTO_ON",
	"FLUSH_AUTO_TIMEOUT",
}

func (s FlushState) String() string { return stateName("FlushState", flushNames, int64(s)) }

func ParseFlushState(raw int64) (FlushState, error) {
	return parseState[FlushState]("flush", flushNames, raw)
}

type DoseState uint16

const (
	DoseOff DoseState = iota
	DoseFixedOff
	DoseFixedOn
	DoseAutoOff
	DoseAutoOn
	DoseAlwaysOn
	DoseAlwaysOnPause
)

var doseNames = []string{
	"DOSE_OFF",
	"DOSE_FIXED_OFF",
	"DOSE_FIXED_ON",
	"DOSE_AUTO_OFF",
	"DOSE_AUTO_ON",
	"DOSE_ALWAYS_ON",
	"DOSE_ALWAYS_ON_PAUSE",
}

func (s DoseState) String() string { return stateName("DoseState", doseNames, int64(s)) }

func ParseDoseState(raw int64) (DoseState, error) {
	return parseState[DoseState]("dose", doseNames, raw)
}

// ---- helpers ----

func parseState[T ~uint16](kind string, table []string, raw int64) (T, error) {
	if raw < 0 || raw >= int64(len(table)) {
		return 0, fmt.Errorf("%w: %s state %d (table has %d entries)", ErrStateOutOfRange, kind, raw, len(table))
	}
	return T(raw), nil
}

func stateName(typ string, table []string, v int64) string {
	if v >= 0 && v < int64(len(table)) {
		return table[v]
	}
	return fmt.Sprintf("%s(%d)", typ, v)
}
