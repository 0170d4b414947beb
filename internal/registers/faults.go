// internal/registers/faults.go
package registers

// Internally detected pump faults carry negative codes.
// Non-negative codes are reported by the drive itself.
const (
	FaultCodeOverheat = -3
	FaultCodeTimeout  = -2
	FaultCodeNoComm   = -1
	FaultCodeOK       = 0
)

var faultDescriptions = map[int]string{
	FaultCodeOverheat: "Pump Overheat",
	FaultCodeTimeout:  "Pump Timeout",
	FaultCodeNoComm:   "No communication",
	FaultCodeOK:       "OK",

	2:   "Control Eeprom (EEF1)",
	3:   "Incorrect config. (CFF)",
	4:   "Invalid config. (CFI)",
	5:   "Modbus com. (SLF1)",
	6:   "int. com.link (ILF)",
	7:   "Com. network (CnF)",
	8:   "External flt-LI/Bit (EPF1)",
	9:   "Overcurrent (OCF)",
	10:  "Precharge (CrF)",
	11:  "Speed fdback loss (SPF)",
	12:  "Load slipping (AnF)",
	16:  "Drive overheat (OHF)",
	17:  "Motor overload (OLF)",
	18:  "Overbraking (ObF)",
	19:  "Mains overvoltage (OSF)",
	20:  "1 output phase loss (OPF1)",
	21:  "Input phase loss (PHF)",
	22:  "Undervoltage (USF)",
	23:  "Motor short circuit (SCF1)",
	24:  "Overspeed (SOF)",
	25:  "Auto-tuning (tnF)",
	26:  "Rating error (InF1)",
	27:  "PWR Calib. (InF2)",
	28:  "Int.serial link (InF3)",
	29:  "Int.Mfg area (InF4)",
	30:  "Power Eeprom (EEF2)",
	32:  "Ground short circuit (SCF3)",
	33:  "3out ph loss (OPF2)",
	34:  "CAN com. (COF)",
	35:  "Brake control (bLF)",
	38:  "External fault com. (EPF2)",
	41:  "Brake feedback (brF)",
	42:  "PC com. (SLF2)",
	44:  "Torque/current lim (SSF)",
	45:  "HMI com. (SLF3)",
	49:  "LI6=PTC probe (PtFL)",
	50:  "PTC fault (OtFL)",
	51:  "Internal- I measure (InF9)",
	52:  "Internal-mains circuit (InFA)",
	53:  "Internal- th. sensor (InFb)",
	54:  "IGBT overheat (tJF)",
	55:  "IGBT short circuit (SCF4)",
	56:  "Motor short circuit (SCF5)",
	58:  "Out. contact. stuck (FCF1)",
	59:  "Out. contact. open. (FCF2)",
	64:  "input contactor (LCF)",
	67:  "IGBT desaturation (HdF)",
	68:  "Internal-option (InF6)",
	69:  "internal- CPU (InFE)",
	71:  "AI3 4-20mA loss (LFF3)",
	73:  "Cards pairing (HCF)",
	76:  "Load fault (dLF)",
	77:  "Bad conf (CFI2)",
	99:  "Ch.sw. fault (CSF)",
	100: "Pr.Underload.Flt (ULF)",
	101: "Proc.Overload Flt (OLC)",
	105: "Angle error (ASF)",
	107: "Safety fault (SAFF)",
	108: "FB fault (FbE)",
	109: "FB stop flt. (FbES)",
}

// FaultDescription looks up the human readable text of a pump fault code.
func FaultDescription(code int) (string, bool) {
	d, ok := faultDescriptions[code]
	return d, ok
}
