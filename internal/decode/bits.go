// internal/decode/bits.go
package decode

import "github.com/tamzrod/sanitrax-ctrl/internal/registers"

// Flags is one bitfield register expanded against its catalog.
type Flags struct {
	Catalog registers.BitCatalog
	Word    uint16
}

// Bits decodes bit i (LSB = 0) of word into catalog position i.
// Pure function.
func Bits(word uint16, cat registers.BitCatalog) Flags {
	return Flags{Catalog: cat, Word: word}
}

// Bit reports bit i.
func (f Flags) Bit(i int) bool {
	if i < 0 || i > 15 {
		return false
	}
	return f.Word&(1<<uint(i)) != 0
}

// Get reports the flag with the given name.
// Placeholder names shared by several bits resolve to the highest such bit.
func (f Flags) Get(name string) bool {
	set, found := false, false
	for i, n := range f.Catalog {
		if n == name {
			set, found = f.Bit(i), true
		}
	}
	return found && set
}

// Object returns the flags as name -> 0/1, catalog order, duplicates collapsed.
func (f Flags) Object() Object {
	obj := make(Object, 0, len(f.Catalog))
	for i, n := range f.Catalog {
		v := 0
		if f.Bit(i) {
			v = 1
		}
		obj = append(obj, Field{Key: n, Value: v})
	}
	return obj.Dedup()
}

func (f Flags) MarshalJSON() ([]byte, error) {
	return f.Object().MarshalJSON()
}

// FlagSet holds every bitfield register decoded in one cycle.
type FlagSet struct {
	InputTop    Flags
	InputBottom Flags
	Output      Flags
	OutputMask  Flags
	OutputFault Flags // labelled with the output names
	Fault       Flags
	FaultMask   Flags
	PumpStatus  [2]Flags
}

// DecodeAll expands the bitfield registers of a normalized block.
func DecodeAll(n Normalized) FlagSet {
	word := func(r registers.Register) uint16 { return uint16(n[r].Int()) }

	fs := FlagSet{
		InputTop:    Bits(word(registers.InputTop), registers.InputTopBits),
		InputBottom: Bits(word(registers.InputBottom), registers.InputBottomBits),
		Output:      Bits(word(registers.Output), registers.OutputBits),
		OutputMask:  Bits(word(registers.OutputMask), registers.OutputBits),
		OutputFault: Bits(word(registers.OutputFault), registers.OutputBits),
		Fault:       Bits(word(registers.Fault), registers.FaultBits),
		FaultMask:   Bits(word(registers.FaultMask), registers.FaultBits),
	}
	for i, p := range registers.Pumps {
		fs.PumpStatus[i] = Bits(word(p.Status), registers.DriveStatusBits)
	}
	return fs
}
