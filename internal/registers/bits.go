// internal/registers/bits.go
package registers

// BitCatalog names the 16 bits of a bitfield register, LSB first.
// Unused bits keep placeholder names. Order is protocol-locked.
type BitCatalog [16]string

var InputTopBits = BitCatalog{
	"DC_OK_12V",
	"DC_OK_24V",
	"Tank_Low",
	"Tank_Normal",
	"Tank_High",
	"Tank_Overflow",
	"Pressure_Switch",
	"Water_Counter",
	"Anti_Freeze",
	"Flush_Valve_2",
	"Flush_Valve_1",
	"Fill_Tank_Valve",
	"Dose_Switch_1",
	"Dose_Switch_2",
	"Hydrophore_OK",
	"Emergency_Stop_OK",
}

var InputBottomBits = BitCatalog{
	"Vacuum_Pump_2_green",
	"Vacuum_Pump_2_red",
	"Vacuum_Pump_1_green",
	"Vacuum_Pump_1_red",
	"Hydrophore_Run",
	"Hydrophore_Red",
	"Alarm_Lamp",
	"Reset_Alarm",
	"Hydrophore_Manual",
	"Hydrophore_Auto",
	"Pump1_Manual",
	"Pump1_Auto",
	"Pump2_Manual",
	"Pump2_Auto",
	"Flush_Button_1",
	"Flush_Button_2",
}

// OutputBits labels the output word, the output mask and the output fault word.
var OutputBits = BitCatalog{
	"b0",
	"b1",
	"b2",
	"b3",
	"Fill_Tank_Valve",
	"Flush_Valve_1",
	"Flush_Valve_2",
	"Anti_Freeze",
	"b8",
	"Alarm_Lamp",
	"Hydrophore_Red",
	"Hydrophore_Run",
	"Vacuum_Pump_1_red",
	"Vacuum_Pump_1_green",
	"Vacuum_Pump_2_red",
	"Vacuum_Pump_2_green",
}

// Fault word bit positions.
const (
	BitWaterSupplyError = iota
	BitTankEmpty
	BitTankOverflow
	BitHydrophoreFail
	BitHydrophoreTimeout
	BitPump1CommError
	BitPump2CommError
	BitPump1Fault
	BitPump2Fault
	BitPump1Timeout
	BitPump2Timeout
	BitPump1Overheat
	BitPump2Overheat
	BitEmergencyStop
	BitDosingError
	BitTempSensorError
)

// FaultBits labels the fault word and the fault mask.
var FaultBits = BitCatalog{
	BitWaterSupplyError:  "Water_Supply_Error",
	BitTankEmpty:         "Tank_Empty",
	BitTankOverflow:      "Tank_Overflow",
	BitHydrophoreFail:    "Hydrophore_Fail",
	BitHydrophoreTimeout: "Hydrophore_Timeout",
	BitPump1CommError:    "Pump1_Comm_Error",
	BitPump2CommError:    "Pump2_Comm_Error",
	BitPump1Fault:        "Pump1_Fault",
	BitPump2Fault:        "Pump2_Fault",
	BitPump1Timeout:      "Pump1_Timeout",
	BitPump2Timeout:      "Pump2_Timeout",
	BitPump1Overheat:     "Pump1_Overheat",
	BitPump2Overheat:     "Pump2_Overheat",
	BitEmergencyStop:     "Emergency_Stop",
	BitDosingError:       "Dosing_Error",
	BitTempSensorError:   "Temp_Sensor_Error",
}

// Drive status word bit positions (standard drive status word).
const (
	DriveBitReady   = 1
	DriveBitRunning = 2
	DriveBitFault   = 3
	DriveBitAlarm   = 7
)

// DriveStatusBits labels the per-pump drive status word.
var DriveStatusBits = BitCatalog{
	"Reserved",
	"Ready",
	"Running",
	"Fault",
	"Power section line supply present",
	"Reserved",
	"Reserved",
	"Alarm",
	"Reserved",
	"Command via Network",
	"Reference reached",
	"Reference outside limits",
	"Reserved",
	"Reserved",
	"STOP key pressed",
	"Reverse rotation",
}

// Pump groups the registers and fault-word bits belonging to one vacuum pump.
type Pump struct {
	Number int

	// First is the first register of the contiguous 19-register drive block.
	First Register
	Last  Register

	Temp         Register
	Vac          Register
	Fault        Register
	Status       Register
	MotorCurrent Register
	MainsVolt    Register

	State Register // pump state machine
	Flush Register // flush valve state machine
	Reset Register

	CommErrorBit int
	TimeoutBit   int
	OverheatBit  int
	FaultBit     int
}

var Pump1 = Pump{
	Number:       1,
	First:        P1MBCode,
	Last:         P1MotorPower,
	Temp:         P1Temp,
	Vac:          P1Vac,
	Fault:        P1Fault,
	Status:       P1Status,
	MotorCurrent: P1MotorCurrent,
	MainsVolt:    P1MainsVolt,
	State:        StatePump1,
	Flush:        StateFlush1,
	Reset:        ResetPump1,
	CommErrorBit: BitPump1CommError,
	TimeoutBit:   BitPump1Timeout,
	OverheatBit:  BitPump1Overheat,
	FaultBit:     BitPump1Fault,
}

var Pump2 = Pump{
	Number:       2,
	First:        P2MBCode,
	Last:         P2MotorPower,
	Temp:         P2Temp,
	Vac:          P2Vac,
	Fault:        P2Fault,
	Status:       P2Status,
	MotorCurrent: P2MotorCurrent,
	MainsVolt:    P2MainsVolt,
	State:        StatePump2,
	Flush:        StateFlush2,
	Reset:        ResetPump2,
	CommErrorBit: BitPump2CommError,
	TimeoutBit:   BitPump2Timeout,
	OverheatBit:  BitPump2Overheat,
	FaultBit:     BitPump2Fault,
}

// Pumps lists both pumps in display order.
var Pumps = [2]Pump{Pump1, Pump2}

// Block returns the drive registers of the pump in wire order.
func (p Pump) Block() []Register {
	out := make([]Register, 0, int(p.Last-p.First)+1)
	for r := p.First; r <= p.Last; r++ {
		out = append(out, r)
	}
	return out
}
