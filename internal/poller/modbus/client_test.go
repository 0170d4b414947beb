// internal/poller/modbus/client_test.go
package modbus

import "testing"

func TestPackUnpackRegisters(t *testing.T) {
	regs := []uint16{0x0001, 0xFFFB, 0x1234}

	b := packRegisters(regs)
	want := []byte{0x00, 0x01, 0xFF, 0xFB, 0x12, 0x34}
	if string(b) != string(want) {
		t.Fatalf("pack got=% x want=% x", b, want)
	}

	got := unpackRegisters(b)
	for i := range regs {
		if got[i] != regs[i] {
			t.Fatalf("unpack[%d] got=%#x want=%#x", i, got[i], regs[i])
		}
	}
}

func TestNew_RequiresPort(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for empty port")
	}
}
