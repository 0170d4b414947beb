// internal/snapshot/snapshot.go
package snapshot

import (
	"fmt"
	"time"

	"github.com/tamzrod/sanitrax-ctrl/internal/decode"
	"github.com/tamzrod/sanitrax-ctrl/internal/gps"
	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
)

// Input is everything one cycle has gathered before assembly.
type Input struct {
	At         time.Time
	Raw        registers.Raw
	Normalized decode.Normalized
	WaterSum   int64
	GPS        gps.Fix
}

// Display is the per-pump subset shown in the app.
type Display struct {
	Current          float64 `json:"current"`
	MainsVoltage     float64 `json:"mains_voltage"`
	PumpTemperature  float64 `json:"pump_temperature"`
	RelativePressure float64 `json:"relative_pressure"`
}

// PumpView is the published view of one vacuum pump.
type PumpView struct {
	Number  int
	Status  decode.Flags
	Fault   decode.FaultDescriptor
	State   registers.PumpState
	Flush   registers.FlushState
	Display Display

	// Data carries the drive register block as read, unscaled.
	Data decode.Object
}

// StatusObject is the drive status word plus the resolved fault text.
func (p PumpView) StatusObject() decode.Object {
	return append(p.Status.Object(), decode.Field{Key: "Status_text", Value: p.Fault.Description})
}

// States holds the decoded state machines.
type States struct {
	Hydrophore registers.HydrophoreState
	Breaktank  registers.BreaktankState
	Pump       [2]registers.PumpState
	Flush      [2]registers.FlushState
	Dose       registers.DoseState
}

// Object renders the states under their display labels.
func (s States) Object() decode.Object {
	return decode.Object{
		{Key: "Hydrophore", Value: s.Hydrophore.String()},
		{Key: "Breaktank", Value: s.Breaktank.String()},
		{Key: "Pump 1", Value: s.Pump[0].String()},
		{Key: "Pump 2", Value: s.Pump[1].String()},
		{Key: "Flush Valve 1", Value: s.Flush[0].String()},
		{Key: "Flush Valve 2", Value: s.Flush[1].String()},
		{Key: "Antifreeze Pump", Value: s.Dose.String()},
	}
}

// Snapshot is the fully decoded composite of one poll cycle.
// It is immutable once assembled and is what every sink consumes.
type Snapshot struct {
	At time.Time

	Raw registers.Raw

	// Registers is the normalized block with the pump fault registers
	// replaced by the resolved fault codes.
	Registers decode.Normalized

	Flags       decode.FlagSet
	Pumps       [2]PumpView
	States      States
	Antifreeze  decode.Object
	Temperature decode.Object

	WaterSum   int64
	WaterTotal float64
	GPS        gps.Fix
}

// ---- subsets ----

var antifreezeLabels = []struct {
	label string
	reg   registers.Register
}{
	{"Dose 1", registers.AntifreezeDose1},
	{"Dose 2", registers.AntifreezeDose2},
	{"Dose 3", registers.AntifreezeDose3},
	{"Dose 4", registers.AntifreezeDose4},
	{"Dose 5", registers.AntifreezeDose5},
	{"Fixed Dose", registers.AntifreezeDoseManual},
	{"Temperature 1", registers.AntifreezeTemp1},
	{"Temperature 2", registers.AntifreezeTemp2},
	{"Temperature 3", registers.AntifreezeTemp3},
	{"Temperature 4", registers.AntifreezeTemp4},
	{"Temperature 5", registers.AntifreezeTemp5},
	{"Dosing pump factor", registers.DosingpumpFactor},
	{"Water meter factor", registers.WatermeterFactor},
	{"Water counter", registers.WaterCounter},
	{"Dose counter", registers.DoseCounter},
	{"Current dose", registers.CurrentDose},
}

var temperatureLabels = []struct {
	label string
	reg   registers.Register
}{
	{"External temperature", registers.ExternalTemp},
	{"External temperature A", registers.ExternalTempFloatA},
	{"External temperature B", registers.ExternalTempFloatB},
}

// ---- assembly ----

// Assemble builds the published snapshot.
// An undefined state index or fault code fails the whole assembly.
func Assemble(in Input) (*Snapshot, error) {
	n := in.Normalized
	fs := decode.DecodeAll(n)

	faults, err := decode.ResolvePumps(fs, n)
	if err != nil {
		return nil, err
	}

	states, err := decodeStates(n)
	if err != nil {
		return nil, err
	}

	regs := n
	for i, p := range registers.Pumps {
		regs[p.Fault] = decode.IntValue(int64(faults[i].Code))
	}

	s := &Snapshot{
		At:        in.At,
		Raw:       in.Raw,
		Registers: regs,
		Flags:     fs,
		States:    states,
		WaterSum:  in.WaterSum,
		GPS:       in.GPS,
	}

	for i, p := range registers.Pumps {
		data := make(decode.Object, 0, int(p.Last-p.First)+1)
		for _, r := range p.Block() {
			data = append(data, decode.Field{Key: r.Name(), Value: decode.IntValue(int64(in.Raw[r]))})
		}
		s.Pumps[i] = PumpView{
			Number: p.Number,
			Status: fs.PumpStatus[i],
			Fault:  faults[i],
			State:  states.Pump[i],
			Flush:  states.Flush[i],
			Display: Display{
				Current:          n[p.MotorCurrent].Float(),
				MainsVoltage:     n[p.MainsVolt].Float(),
				PumpTemperature:  n[p.Temp].Float(),
				RelativePressure: n[p.Vac].Float(),
			},
			Data: data,
		}
	}

	for _, l := range antifreezeLabels {
		s.Antifreeze = append(s.Antifreeze, decode.Field{Key: l.label, Value: n[l.reg]})
	}
	for _, l := range temperatureLabels {
		s.Temperature = append(s.Temperature, decode.Field{Key: l.label, Value: n[l.reg]})
	}

	// A zero factor means the meter is unconfigured; the total stays 0.
	if factor := n[registers.WatermeterFactor].Float(); factor != 0 {
		s.WaterTotal = float64(in.WaterSum) / factor
	}

	return s, nil
}

// WaterFactorMissing reports a snapshot whose water total could not be computed.
func (s *Snapshot) WaterFactorMissing() bool {
	return s.Registers[registers.WatermeterFactor].Int() == 0
}

func decodeStates(n decode.Normalized) (States, error) {
	var (
		st  States
		err error
	)
	if st.Hydrophore, err = registers.ParseHydrophoreState(n[registers.StateHydrophore].Int()); err != nil {
		return st, err
	}
	if st.Breaktank, err = registers.ParseBreaktankState(n[registers.StateBreaktank].Int()); err != nil {
		return st, err
	}
	for i, p := range registers.Pumps {
		if st.Pump[i], err = registers.ParsePumpState(n[p.State].Int()); err != nil {
			return st, fmt.Errorf("pump %d: %w", p.Number, err)
		}
		if st.Flush[i], err = registers.ParseFlushState(n[p.Flush].Int()); err != nil {
			return st, fmt.Errorf("flush valve %d: %w", p.Number, err)
		}
	}
	if st.Dose, err = registers.ParseDoseState(n[registers.StateDose].Int()); err != nil {
		return st, err
	}
	return st, nil
}
