// internal/snapshot/snapshot_test.go
package snapshot

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/tamzrod/sanitrax-ctrl/internal/decode"
	"github.com/tamzrod/sanitrax-ctrl/internal/gps"
	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
)

func assemble(t *testing.T, raw registers.Raw, sum int64) *Snapshot {
	t.Helper()
	s, err := Assemble(Input{
		At:         time.Unix(1700000000, 0),
		Raw:        raw,
		Normalized: decode.Normalize(raw, decode.DefaultScaling),
		WaterSum:   sum,
		GPS:        gps.UnknownFix(),
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return s
}

func TestAssemble_FaultOverrideAndStatusText(t *testing.T) {
	var raw registers.Raw
	raw[registers.Fault] = 1 << registers.BitPump1Timeout
	raw[registers.P1Fault] = 17
	raw[registers.P2Fault] = 17 // stale: Pump2_Fault bit clear

	s := assemble(t, raw, 0)

	if got := s.Registers[registers.P1Fault].Int(); got != -2 {
		t.Fatalf("p1 fault register got=%d want=-2", got)
	}
	if got := s.Registers[registers.P2Fault].Int(); got != 0 {
		t.Fatalf("p2 fault register got=%d want=0", got)
	}
	if s.Raw[registers.P1Fault] != 17 {
		t.Fatalf("raw block MUST NOT be altered")
	}

	st := s.Pumps[0].StatusObject()
	last := st[len(st)-1]
	if last.Key != "Status_text" || last.Value != "Pump Timeout" {
		t.Fatalf("status text got=%+v", last)
	}
}

func TestAssemble_StatesAndLabels(t *testing.T) {
	var raw registers.Raw
	raw[registers.StateHydrophore] = uint16(registers.HydrophoreAutoOn)
	raw[registers.StatePump2] = uint16(registers.PumpAutoOn)

	s := assemble(t, raw, 0)
	obj := s.States.Object()

	wantKeys := []string{"Hydrophore", "Breaktank", "Pump 1", "Pump 2", "Flush Valve 1", "Flush Valve 2", "Antifreeze Pump"}
	if len(obj) != len(wantKeys) {
		t.Fatalf("expected %d states, got %d", len(wantKeys), len(obj))
	}
	for i, k := range wantKeys {
		if obj[i].Key != k {
			t.Fatalf("state %d key got=%q want=%q", i, obj[i].Key, k)
		}
	}
	if obj[0].Value != "HYDROPHORE_AUTO_ON" || obj[3].Value != "PUMP_AUTO_ON" {
		t.Fatalf("state names got %v / %v", obj[0].Value, obj[3].Value)
	}
}

func TestAssemble_OutOfRangeStateFails(t *testing.T) {
	var raw registers.Raw
	raw[registers.StateFlush2] = 99

	_, err := Assemble(Input{Raw: raw, Normalized: decode.Normalize(raw, decode.DefaultScaling)})
	if !errors.Is(err, registers.ErrStateOutOfRange) {
		t.Fatalf("expected ErrStateOutOfRange, got %v", err)
	}
}

func TestAssemble_UnknownFaultCodeFails(t *testing.T) {
	var raw registers.Raw
	raw[registers.Fault] = 1 << registers.BitPump1Fault
	raw[registers.P1Fault] = 1

	_, err := Assemble(Input{Raw: raw, Normalized: decode.Normalize(raw, decode.DefaultScaling)})
	if !errors.Is(err, decode.ErrUnknownFaultCode) {
		t.Fatalf("expected ErrUnknownFaultCode, got %v", err)
	}
}

func TestAssemble_Subsets(t *testing.T) {
	var raw registers.Raw
	raw[registers.AntifreezeDose1] = 11
	raw[registers.AntifreezeTemp1] = 65536 - 4
	raw[registers.CurrentDose] = 7
	raw[registers.ExternalTemp] = 123

	s := assemble(t, raw, 0)

	if len(s.Antifreeze) != 16 {
		t.Fatalf("antifreeze entries got=%d want=16", len(s.Antifreeze))
	}
	if s.Antifreeze[0].Key != "Dose 1" || s.Antifreeze[0].Value.(decode.Value).Int() != 11 {
		t.Fatalf("first antifreeze entry got=%+v", s.Antifreeze[0])
	}
	if s.Antifreeze[6].Value.(decode.Value).Int() != -4 {
		t.Fatalf("temperature 1 not sign corrected")
	}
	if s.Antifreeze[15].Key != "Current dose" || s.Antifreeze[15].Value.(decode.Value).Int() != 7 {
		t.Fatalf("last antifreeze entry got=%+v", s.Antifreeze[15])
	}

	if len(s.Temperature) != 3 || s.Temperature[0].Value.(decode.Value).Float() != 12.3 {
		t.Fatalf("temperature subset got=%+v", s.Temperature)
	}
}

func TestAssemble_WaterTotal(t *testing.T) {
	var raw registers.Raw
	raw[registers.WatermeterFactor] = 4

	s := assemble(t, raw, 10)
	if s.WaterTotal != 2.5 {
		t.Fatalf("total got=%v want=2.5", s.WaterTotal)
	}
	if s.WaterFactorMissing() {
		t.Fatalf("factor reported missing")
	}

	raw[registers.WatermeterFactor] = 0
	s = assemble(t, raw, 10)
	if s.WaterTotal != 0 || !s.WaterFactorMissing() {
		t.Fatalf("zero factor got total=%v", s.WaterTotal)
	}
}

func TestStatus_Document(t *testing.T) {
	var raw registers.Raw
	raw[registers.Fault] = 1 << registers.BitHydrophoreFail
	raw[registers.P1MotorCurrent] = 42
	raw[registers.WatermeterFactor] = 1

	s := assemble(t, raw, 590)
	b, err := json.Marshal(s.Status(time.Unix(1700000000, 0)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc map[string]map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, k := range []string{"breakTank", "dosingPump", "environment", "heartbeat", "hydrophore", "pump1", "pump2", "system"} {
		if _, ok := doc[k]; !ok {
			t.Fatalf("missing section %q", k)
		}
	}
	if doc["breakTank"]["waterCounter"] != float64(590) {
		t.Fatalf("waterCounter got=%v", doc["breakTank"]["waterCounter"])
	}
	if doc["heartbeat"]["timestamp"] != float64(1700000000) {
		t.Fatalf("heartbeat got=%v", doc["heartbeat"]["timestamp"])
	}
	if doc["hydrophore"]["error"] != float64(1) {
		t.Fatalf("hydrophore error got=%v", doc["hydrophore"]["error"])
	}
	if doc["environment"]["gpsLocation"] != "Unknown,Unknown" {
		t.Fatalf("gpsLocation got=%v", doc["environment"]["gpsLocation"])
	}

	display := doc["pump1"]["display"].(map[string]any)
	if display["current"] != 4.2 {
		t.Fatalf("pump1 current got=%v", display["current"])
	}
	data := doc["pump1"]["data"].(map[string]any)
	if len(data) != 19 {
		t.Fatalf("pump1 data entries got=%d want=19", len(data))
	}
	if data["mb_p1_Motor_Current"] != float64(42) {
		t.Fatalf("pump data MUST be unscaled, got=%v", data["mb_p1_Motor_Current"])
	}
}

func TestHistory(t *testing.T) {
	var raw registers.Raw
	raw[registers.P2MainsVolt] = 2300

	s := assemble(t, raw, 12)
	h := s.History()
	if len(h) != 9 {
		t.Fatalf("expected 9 metrics, got %d", len(h))
	}
	if h[0].Name != "waterCounter" || h[0].Value != int64(12) {
		t.Fatalf("first metric got=%+v", h[0])
	}
	if h[8].Name != "pump2Voltage" || h[8].Value != 230.0 {
		t.Fatalf("last metric got=%+v", h[8])
	}
}
