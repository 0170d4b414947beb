// internal/registers/catalog_test.go
package registers

import (
	"errors"
	"testing"
)

func TestCatalog_OffsetsAreStable(t *testing.T) {
	cases := []struct {
		reg    Register
		offset uint16
		name   string
	}{
		{Magic, 0, "mb_magic"},
		{HydrophorePostrun, 1, "mb_hydrophore_postrun"},
		{AntifreezeTemp1, 21, "mb_antifreeze_temp_1"},
		{WatermeterFactor, 27, "mb_watermeter_factor"},
		{ResetBreaktank, 28, "mb_reset_breaktank"},
		{ResetPump2, 31, "mb_reset_pump_2"},
		{Fault, 33, "mb_fault"},
		{WaterCounter, 39, "mb_water_counter"},
		{ExternalTemp, 43, "mb_external_temp"},
		{StateBreaktank, 46, "mb_bstate"},
		{StateDose, 52, "mb_dstate"},
		{P1MBCode, 53, "mb_p1_mbcode"},
		{P1Fault, 60, "mb_p1_Fault"},
		{P1Status, 61, "mb_p1_Status"},
		{P2MBCode, 72, "mb_p2_mbcode"},
		{P2MotorPower, 90, "mb_p2_Motor_Power"},
		{CustomAddress, 94, "mb_custom_address"},
	}

	for _, c := range cases {
		if c.reg.Offset() != c.offset {
			t.Fatalf("%s: offset got=%d want=%d", c.name, c.reg.Offset(), c.offset)
		}
		if c.reg.Name() != c.name {
			t.Fatalf("offset %d: name got=%q want=%q", c.offset, c.reg.Name(), c.name)
		}
	}

	if Count != 95 {
		t.Fatalf("expected 95 polled registers, got %d", Count)
	}
}

func TestCatalog_SettingsBlock(t *testing.T) {
	s := Settings()
	if len(s) != 27 || SettingsCount != 27 {
		t.Fatalf("expected 27 configurable registers, got %d", len(s))
	}
	if s[0] != HydrophorePostrun || s[len(s)-1] != WatermeterFactor {
		t.Fatalf("unexpected configurable block bounds: %v..%v", s[0], s[len(s)-1])
	}
	for _, r := range s {
		if !r.Configurable() {
			t.Fatalf("%s should be configurable", r)
		}
	}
	if ResetBreaktank.Configurable() || Magic.Configurable() {
		t.Fatalf("reset/magic registers must not be configurable")
	}
}

func TestCatalog_SignedRegisters(t *testing.T) {
	signed := map[Register]bool{
		ExternalTemp:    true,
		AntifreezeTemp1: true,
		AntifreezeTemp2: true,
		AntifreezeTemp3: true,
		AntifreezeTemp4: true,
		AntifreezeTemp5: true,
	}
	for _, r := range All() {
		if r.Signed() != signed[r] {
			t.Fatalf("%s: signed got=%v want=%v", r, r.Signed(), signed[r])
		}
	}
}

func TestCatalog_LookupRoundTrip(t *testing.T) {
	for _, r := range All() {
		got, ok := Lookup(r.Name())
		if !ok || got != r {
			t.Fatalf("lookup %q: got=%v ok=%v", r.Name(), got, ok)
		}
	}
	if _, ok := Lookup("mb_custom_data0"); ok {
		t.Fatalf("custom payload registers are not polled")
	}
}

func TestRawFromSlice_Length(t *testing.T) {
	if _, err := RawFromSlice(make([]uint16, Count-1)); err == nil {
		t.Fatalf("expected error for short block")
	}
	raw, err := RawFromSlice(make([]uint16, Count))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw) != Count {
		t.Fatalf("raw length got=%d", len(raw))
	}
}

func TestPump_Blocks(t *testing.T) {
	if n := len(Pump1.Block()); n != 19 {
		t.Fatalf("pump1 block: got %d registers, want 19", n)
	}
	if n := len(Pump2.Block()); n != 19 {
		t.Fatalf("pump2 block: got %d registers, want 19", n)
	}
	if FaultBits[Pump1.CommErrorBit] != "Pump1_Comm_Error" || FaultBits[Pump2.OverheatBit] != "Pump2_Overheat" {
		t.Fatalf("pump fault bits mislabelled")
	}
}

func TestParseState_OutOfRange(t *testing.T) {
	if _, err := ParseBreaktankState(9); !errors.Is(err, ErrStateOutOfRange) {
		t.Fatalf("expected ErrStateOutOfRange, got %v", err)
	}
	if _, err := ParseDoseState(-1); !errors.Is(err, ErrStateOutOfRange) {
		t.Fatalf("expected ErrStateOutOfRange for negative index, got %v", err)
	}

	s, err := ParseHydrophoreState(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.String() != "HYDROPHORE_AUTO_POSTRUN" {
		t.Fatalf("got %q", s.String())
	}

	f, err := ParseFlushState(3)
	if err != nil || f != FlushAutoTimeout {
		t.Fatalf("flush: got=%v err=%v", f, err)
	}
}

func TestFaultDescription(t *testing.T) {
	if d, ok := FaultDescription(FaultCodeNoComm); !ok || d != "No communication" {
		t.Fatalf("got %q ok=%v", d, ok)
	}
	if d, ok := FaultDescription(17); !ok || d != "Motor overload (OLF)" {
		t.Fatalf("got %q ok=%v", d, ok)
	}
	if _, ok := FaultDescription(1); ok {
		t.Fatalf("code 1 is not defined by the drive table")
	}
}
