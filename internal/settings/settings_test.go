// internal/settings/settings_test.go
package settings

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/sanitrax-ctrl/internal/decode"
	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
)

type multiWrite struct {
	addr   uint16
	values []uint16
}

type singleWrite struct {
	addr, value uint16
}

type fakeDevice struct {
	fail   error
	multi  []multiWrite
	single []singleWrite
}

func (f *fakeDevice) WriteSingleRegister(addr, value uint16) error {
	if f.fail != nil {
		return f.fail
	}
	f.single = append(f.single, singleWrite{addr, value})
	return nil
}

func (f *fakeDevice) WriteMultipleRegisters(addr uint16, values []uint16) error {
	if f.fail != nil {
		return f.fail
	}
	f.multi = append(f.multi, multiWrite{addr, append([]uint16(nil), values...)})
	return nil
}

func sampleRecord() Record {
	var rec Record
	for i := range rec {
		rec[i] = int64(10 + i)
	}
	rec.Set(registers.AntifreezeTemp1, -5)
	return rec
}

func newTestReconciler(t *testing.T) (*Reconciler, *Store, *fakeDevice) {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	dev := &fakeDevice{}
	r := NewReconciler(store, dev, zap.NewNop())
	r.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return r, store, dev
}

// ---- record ----

func TestFromNormalized_TakesConfigurableBlock(t *testing.T) {
	var raw registers.Raw
	raw[registers.HydrophorePostrun] = 30
	raw[registers.AntifreezeTemp2] = 65536 - 3
	raw[registers.WatermeterFactor] = 100
	raw[registers.ResetBreaktank] = 1

	rec := FromNormalized(decode.Normalize(raw, decode.DefaultScaling))
	if rec.Get(registers.HydrophorePostrun) != 30 {
		t.Fatalf("postrun got=%d", rec.Get(registers.HydrophorePostrun))
	}
	if rec.Get(registers.AntifreezeTemp2) != -3 {
		t.Fatalf("temp2 got=%d want=-3", rec.Get(registers.AntifreezeTemp2))
	}
	if rec.Get(registers.WatermeterFactor) != 100 {
		t.Fatalf("watermeter factor got=%d", rec.Get(registers.WatermeterFactor))
	}
}

func TestRecord_WordsTwosComplement(t *testing.T) {
	rec := sampleRecord()
	w := rec.Words()
	if len(w) != registers.SettingsCount {
		t.Fatalf("expected %d words, got %d", registers.SettingsCount, len(w))
	}
	idx := int(registers.AntifreezeTemp1 - registers.SettingsFirst)
	if w[idx] != 65531 {
		t.Fatalf("temp1 word got=%d want=65531", w[idx])
	}
}

func TestRecord_UnmarshalRejectsKeySetMismatch(t *testing.T) {
	b, _ := json.Marshal(sampleRecord())

	var m map[string]int64
	_ = json.Unmarshal(b, &m)
	delete(m, "mb_pump_stop")
	short, _ := json.Marshal(m)

	var rec Record
	if err := json.Unmarshal(short, &rec); err == nil {
		t.Fatalf("expected missing key error")
	}

	m["mb_pump_stop"] = 1
	m["mb_bogus"] = 1
	extra, _ := json.Marshal(m)
	if err := json.Unmarshal(extra, &rec); err == nil {
		t.Fatalf("expected unexpected key error")
	}
}

// ---- store ----

func TestStore_LoadMissing(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SaveLoadFormat(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	rec := sampleRecord()
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "{\n    \"mb_antifreeze_dose_1\": ") {
		t.Fatalf("unexpected layout:\n%s", data)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != rec {
		t.Fatalf("round trip mismatch")
	}
}

func TestStore_ParseCorrupt(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	good, _ := json.Marshal(sampleRecord())
	var m map[string]any
	_ = json.Unmarshal(good, &m)

	cases := map[string]func() []byte{
		"not json": func() []byte { return []byte("{nope") },
		"array":    func() []byte { return []byte("[1,2]") },
		"out of range": func() []byte {
			m2 := clone(m)
			m2["mb_pump_start"] = 70000
			b, _ := json.Marshal(m2)
			return b
		},
		"signed below range": func() []byte {
			m2 := clone(m)
			m2["mb_antifreeze_temp_3"] = -40000
			b, _ := json.Marshal(m2)
			return b
		},
		"fractional": func() []byte {
			m2 := clone(m)
			m2["mb_flush_start"] = 1.5
			b, _ := json.Marshal(m2)
			return b
		},
		"missing key": func() []byte {
			m2 := clone(m)
			delete(m2, "mb_watermeter_factor")
			b, _ := json.Marshal(m2)
			return b
		},
	}

	for name, mk := range cases {
		if _, err := store.Parse(mk()); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("%s: expected ErrCorrupt, got %v", name, err)
		}
	}

	if _, err := store.Parse(good); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
}

func clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ---- reconciler ----

func TestReconcile_FirstRunPersistsLive(t *testing.T) {
	r, store, dev := newTestReconciler(t)
	live := sampleRecord()

	act, err := r.Reconcile(live)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if act != ActionCreated {
		t.Fatalf("action got=%v want=created", act)
	}
	if len(dev.multi) != 0 || len(dev.single) != 0 {
		t.Fatalf("first run MUST NOT write to the controller")
	}
	got, err := store.Load()
	if err != nil || got != live {
		t.Fatalf("persisted record mismatch err=%v", err)
	}
}

func TestReconcile_EqualIsNoop(t *testing.T) {
	r, store, dev := newTestReconciler(t)
	live := sampleRecord()
	if err := store.Save(live); err != nil {
		t.Fatalf("Save: %v", err)
	}

	act, err := r.Reconcile(live)
	if err != nil || act != ActionNone {
		t.Fatalf("got act=%v err=%v", act, err)
	}
	if len(dev.multi) != 0 {
		t.Fatalf("unexpected write")
	}
}

func TestReconcile_DriftPushesStored(t *testing.T) {
	r, store, dev := newTestReconciler(t)
	stored := sampleRecord()
	if err := store.Save(stored); err != nil {
		t.Fatalf("Save: %v", err)
	}

	live := stored
	live.Set(registers.PumpStart, 999)

	act, err := r.Reconcile(live)
	if err != nil || act != ActionPushed {
		t.Fatalf("got act=%v err=%v", act, err)
	}
	if len(dev.multi) != 1 {
		t.Fatalf("expected exactly one block write, got %d", len(dev.multi))
	}
	w := dev.multi[0]
	if w.addr != 1 || len(w.values) != registers.SettingsCount {
		t.Fatalf("write geometry addr=%d len=%d", w.addr, len(w.values))
	}
	if w.values[int(registers.PumpStart-registers.SettingsFirst)] != uint16(stored.Get(registers.PumpStart)) {
		t.Fatalf("stored value not pushed")
	}

	// the persisted record is authoritative and untouched
	got, _ := store.Load()
	if got != stored {
		t.Fatalf("persisted record changed")
	}
}

func TestReconcile_CorruptQuarantinedThenRecreated(t *testing.T) {
	r, store, dev := newTestReconciler(t)
	if err := os.WriteFile(store.Path(), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	live := sampleRecord()
	act, err := r.Reconcile(live)
	if err != nil || act != ActionRecreated {
		t.Fatalf("got act=%v err=%v", act, err)
	}
	if len(dev.multi) != 0 {
		t.Fatalf("corrupt record MUST NOT be pushed")
	}

	q := store.Path() + ".corrupt-20240301T120000Z"
	data, err := os.ReadFile(q)
	if err != nil || string(data) != "garbage" {
		t.Fatalf("quarantine file missing or altered: %v", err)
	}
	got, err := store.Load()
	if err != nil || got != live {
		t.Fatalf("recreated record mismatch err=%v", err)
	}
}

func TestReconcile_WriteFailureSurfaces(t *testing.T) {
	r, store, dev := newTestReconciler(t)
	stored := sampleRecord()
	_ = store.Save(stored)
	dev.fail = errors.New("timeout")

	live := stored
	live.Set(registers.FlushStop, 1)
	if _, err := r.Reconcile(live); err == nil {
		t.Fatalf("expected write error")
	}
}

func TestApply(t *testing.T) {
	r, store, dev := newTestReconciler(t)
	current := sampleRecord()

	applied, err := r.Apply(current, current)
	if err != nil || applied {
		t.Fatalf("identical settings: applied=%v err=%v", applied, err)
	}

	next := current
	next.Set(registers.DosingpumpFactor, 42)
	applied, err = r.Apply(next, current)
	if err != nil || !applied {
		t.Fatalf("applied=%v err=%v", applied, err)
	}
	if len(dev.multi) != 1 {
		t.Fatalf("expected one block write")
	}
	got, _ := store.Load()
	if got != next {
		t.Fatalf("new settings not persisted")
	}
}

func TestReset(t *testing.T) {
	r, _, dev := newTestReconciler(t)

	if err := r.Reset(registers.ResetPump2); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(dev.single) != 1 || dev.single[0] != (singleWrite{31, 1}) {
		t.Fatalf("unexpected writes %+v", dev.single)
	}

	if err := r.Reset(registers.PumpStart); err == nil {
		t.Fatalf("non-reset register accepted")
	}
}
