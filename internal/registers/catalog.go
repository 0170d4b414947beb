// internal/registers/catalog.go
package registers

import "fmt"

// Register identifies one controller holding register.
// The numeric value IS the wire offset. Offsets are protocol-locked.
type Register uint16

const (
	Magic Register = iota // API version (R), special functions (W)

	// ---- configurable block (offsets 1..27) ----
	HydrophorePostrun
	HydrophoreTimeout
	BreaktankDelay
	BreaktankFillTimeout
	PumpStart
	PumpStop
	PumpThrottleStart
	PumpThrottleStop
	PumpTimeout
	PumpMaxRuntime
	PumpMaxTemp
	FlushStart
	FlushStop
	FlushTimeout
	AntifreezeDose1
	AntifreezeDose2
	AntifreezeDose3
	AntifreezeDose4
	AntifreezeDose5
	AntifreezeDoseManual
	AntifreezeTemp1
	AntifreezeTemp2
	AntifreezeTemp3
	AntifreezeTemp4
	AntifreezeTemp5
	DosingpumpFactor
	WatermeterFactor

	// ---- one-shot reset registers ----
	ResetBreaktank
	ResetHydrophore
	ResetPump1
	ResetPump2

	// ---- bitfields ----
	FaultMask
	Fault
	InputTop
	InputBottom
	Output
	OutputMask
	OutputFault

	// ---- counters / environment ----
	WaterCounter
	DoseCounter
	CurrentDose
	PCBTemp
	ExternalTemp
	ExternalTempFloatA
	ExternalTempFloatB

	// ---- state machines ----
	StateBreaktank
	StateHydrophore
	StatePump1
	StatePump2
	StateFlush1
	StateFlush2
	StateDose

	// ---- pump 1 drive ----
	P1MBCode
	P1Pot
	P1Temp
	P1Vac
	P1State
	P1Freq
	P1PID
	P1Fault
	P1Status
	P1FreqOutput
	P1FreqRamp
	P1MotorCurrent
	P1MotorTorque
	P1ExtStatusWord
	P1MainsVolt
	P1MotorVolt
	P1DriveThermState
	P13210
	P1MotorPower

	// ---- pump 2 drive ----
	P2MBCode
	P2Pot
	P2Temp
	P2Vac
	P2State
	P2Freq
	P2PID
	P2Fault
	P2Status
	P2FreqOutput
	P2FreqRamp
	P2MotorCurrent
	P2MotorTorque
	P2ExtStatusWord
	P2MainsVolt
	P2MotorVolt
	P2DriveThermState
	P23210
	P2MotorPower

	// ---- custom command header ----
	CustomRun
	CustomSlave
	CustomCommand
	CustomAddress
)

// Count is the number of registers read in one poll cycle (offsets 0..Count-1).
// The custom command payload (quantity + data0..15) lives above this range and is not polled.
const Count = int(CustomAddress) + 1

// Configurable block geometry.
const (
	SettingsFirst = HydrophorePostrun
	SettingsLast  = WatermeterFactor
	SettingsCount = int(SettingsLast-SettingsFirst) + 1
)

var names = [Count]string{
	"mb_magic",
	"mb_hydrophore_postrun",
	"mb_hydrophore_timeout",
	"mb_breaktank_delay",
	"mb_breaktank_fill_timeout",
	"mb_pump_start",
	"mb_pump_stop",
	"mb_pump_throttle_start",
	"mb_pump_throttle_stop",
	"mb_pump_timeout",
	"mb_pump_max_runtime",
	"mb_pump_max_temp",
	"mb_flush_start",
	"mb_flush_stop",
	"mb_flush_timeout",
	"mb_antifreeze_dose_1",
	"mb_antifreeze_dose_2",
	"mb_antifreeze_dose_3",
	"mb_antifreeze_dose_4",
	"mb_antifreeze_dose_5",
	"mb_antifreeze_dose_manual",
	"mb_antifreeze_temp_1",
	"mb_antifreeze_temp_2",
	"mb_antifreeze_temp_3",
	"mb_antifreeze_temp_4",
	"mb_antifreeze_temp_5",
	"mb_dosingpump_factor",
	"mb_watermeter_factor",
	"mb_reset_breaktank",
	"mb_reset_hydrophore",
	"mb_reset_pump_1",
	"mb_reset_pump_2",
	"mb_fault_mask",
	"mb_fault",
	"mb_input_top",
	"mb_input_bottom",
	"mb_output",
	"mb_output_mask",
	"mb_output_fault",
	"mb_water_counter",
	"mb_dose_counter",
	"mb_current_dose",
	"mb_pcb_temp",
	"mb_external_temp",
	"mb_external_temp_float_a",
	"mb_external_temp_float_b",
	"mb_bstate",
	"mb_hstate",
	"mb_p1state",
	"mb_p2state",
	"mb_f1state",
	"mb_f2state",
	"mb_dstate",
	"mb_p1_mbcode",
	"mb_p1_Pot",
	"mb_p1_Temp",
	"mb_p1_Vac",
	"mb_p1_State",
	"mb_p1_Freq",
	"mb_p1_PID",
	"mb_p1_Fault",
	"mb_p1_Status",
	"mb_p1_Freq_Output",
	"mb_p1_Freq_Ramp",
	"mb_p1_Motor_Current",
	"mb_p1_Motor_Torque",
	"mb_p1_Ext_Status_Word",
	"mb_p1_Mains_Volt",
	"mb_p1_Motor_Volt",
	"mb_p1_Drive_Therm_State",
	"mb_p1_3210",
	"mb_p1_Motor_Power",
	"mb_p2_mbcode",
	"mb_p2_Pot",
	"mb_p2_Temp",
	"mb_p2_Vac",
	"mb_p2_State",
	"mb_p2_Freq",
	"mb_p2_PID",
	"mb_p2_Fault",
	"mb_p2_Status",
	"mb_p2_Freq_Output",
	"mb_p2_Freq_Ramp",
	"mb_p2_Motor_Current",
	"mb_p2_Motor_Torque",
	"mb_p2_Ext_Status_Word",
	"mb_p2_Mains_Volt",
	"mb_p2_Motor_Volt",
	"mb_p2_Drive_Therm_State",
	"mb_p2_3210",
	"mb_p2_Motor_Power",
	"mb_custom_run",
	"mb_custom_slave",
	"mb_custom_command",
	"mb_custom_address",
}

var byName = func() map[string]Register {
	m := make(map[string]Register, Count)
	for i, n := range names {
		m[n] = Register(i)
	}
	return m
}()

// Name returns the wire name of the register (e.g. "mb_fault").
func (r Register) Name() string {
	if int(r) < Count {
		return names[r]
	}
	return fmt.Sprintf("register(%d)", uint16(r))
}

func (r Register) String() string { return r.Name() }

// Offset returns the wire offset.
func (r Register) Offset() uint16 { return uint16(r) }

// Signed reports whether the register carries a two's-complement value.
func (r Register) Signed() bool {
	switch {
	case r == ExternalTemp:
		return true
	case r >= AntifreezeTemp1 && r <= AntifreezeTemp5:
		return true
	}
	return false
}

// Configurable reports whether the register belongs to the user setpoint block.
func (r Register) Configurable() bool {
	return r >= SettingsFirst && r <= SettingsLast
}

// Lookup resolves a wire name.
func Lookup(name string) (Register, bool) {
	r, ok := byName[name]
	return r, ok
}

// All returns every polled register in wire order.
func All() []Register {
	out := make([]Register, Count)
	for i := range out {
		out[i] = Register(i)
	}
	return out
}

// Names returns the wire names of every polled register in wire order.
func Names() []string {
	out := make([]string, Count)
	copy(out, names[:])
	return out
}

// Settings returns the configurable block in wire order.
func Settings() []Register {
	out := make([]Register, 0, SettingsCount)
	for r := SettingsFirst; r <= SettingsLast; r++ {
		out = append(out, r)
	}
	return out
}

// Raw is one poll cycle worth of register words, indexed by Register.
type Raw [Count]uint16

// RawFromSlice copies a register block read from offset 0.
// The block MUST contain exactly Count words.
func RawFromSlice(words []uint16) (Raw, error) {
	var raw Raw
	if len(words) != Count {
		return raw, fmt.Errorf("registers: got %d words, want %d", len(words), Count)
	}
	copy(raw[:], words)
	return raw, nil
}
