// internal/snapshot/status.go
package snapshot

import (
	"fmt"
	"time"

	"github.com/tamzrod/sanitrax-ctrl/internal/decode"
	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
)

// Status shapes the nested status document published to the remote store.
// Key names and nesting are fixed by the remote consumers.
func (s *Snapshot) Status(now time.Time) decode.Object {
	r := s.Registers

	return decode.Object{
		{Key: "breakTank", Value: decode.Object{
			{Key: "state", Value: s.States.Breaktank.String()},
			{Key: "waterCounter", Value: s.WaterSum},
		}},
		{Key: "dosingPump", Value: decode.Object{
			{Key: "state", Value: s.States.Dose.String()},
			{Key: "doseCounter", Value: r[registers.DoseCounter]},
			{Key: "currentDose", Value: r[registers.CurrentDose]},
		}},
		{Key: "environment", Value: decode.Object{
			{Key: "gpsLocation", Value: s.GPS.Location()},
			{Key: "gpsTimestamp", Value: s.GPS.Time},
			{Key: "temperature", Value: r[registers.ExternalTemp]},
		}},
		{Key: "heartbeat", Value: decode.Object{
			{Key: "timestamp", Value: now.Unix()},
		}},
		{Key: "hydrophore", Value: decode.Object{
			{Key: "error", Value: boolInt(s.Flags.Fault.Bit(registers.BitHydrophoreFail))},
			{Key: "state", Value: s.States.Hydrophore.String()},
			{Key: "display", Value: decode.Object{
				{Key: "total", Value: s.WaterTotal},
			}},
		}},
		{Key: "pump1", Value: s.Pumps[0].status()},
		{Key: "pump2", Value: s.Pumps[1].status()},
		{Key: "system", Value: decode.Object{
			{Key: "fault", Value: s.Flags.Fault},
			{Key: "inputTop", Value: s.Flags.InputTop},
			{Key: "inputBottom", Value: s.Flags.InputBottom},
			{Key: "output", Value: s.Flags.Output},
			{Key: "pcbTemperature", Value: r[registers.PCBTemp]},
		}},
	}
}

func (p PumpView) status() decode.Object {
	return decode.Object{
		{Key: "data", Value: p.Data},
		{Key: "error", Value: p.Fault.Code},
		{Key: "errorDescription", Value: p.Fault.Description},
		{Key: "flush", Value: p.Flush.String()},
		{Key: "state", Value: p.State.String()},
		{Key: "status", Value: p.StatusObject()},
		{Key: "display", Value: p.Display},
	}
}

// Metric is one scalar of the remote history series.
type Metric struct {
	Name  string
	Value any
}

// History lists the per-cycle history scalars in publish order.
func (s *Snapshot) History() []Metric {
	out := []Metric{{Name: "waterCounter", Value: s.WaterSum}}
	for _, p := range s.Pumps {
		prefix := fmt.Sprintf("pump%d", p.Number)
		out = append(out,
			Metric{Name: prefix + "Current", Value: p.Display.Current},
			Metric{Name: prefix + "Pressure", Value: p.Display.RelativePressure},
			Metric{Name: prefix + "Temperature", Value: p.Display.PumpTemperature},
			Metric{Name: prefix + "Voltage", Value: p.Display.MainsVoltage},
		)
	}
	return out
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
