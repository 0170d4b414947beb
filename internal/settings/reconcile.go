// internal/settings/reconcile.go
package settings

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
)

// RegisterWriter is the write half of the controller link.
type RegisterWriter interface {
	WriteSingleRegister(addr, value uint16) error
	WriteMultipleRegisters(addr uint16, values []uint16) error
}

// Action reports what Reconcile did.
type Action int

const (
	ActionNone Action = iota
	ActionCreated
	ActionRecreated
	ActionPushed
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionCreated:
		return "created"
	case ActionRecreated:
		return "recreated"
	case ActionPushed:
		return "pushed"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Reconciler keeps the controller setpoints equal to the persisted record.
// The persisted record is authoritative. There is NO read-back after a write.
type Reconciler struct {
	store *Store
	dev   RegisterWriter
	log   *zap.Logger
	now   func() time.Time
}

func NewReconciler(store *Store, dev RegisterWriter, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{store: store, dev: dev, log: log, now: time.Now}
}

// Reconcile compares the live block against the persisted record.
//
//	no file       -> persist live values (first run)
//	corrupt file  -> quarantine, then as first run
//	differs       -> push the persisted record to the controller
//	equal         -> nothing
func (r *Reconciler) Reconcile(current Record) (Action, error) {
	stored, err := r.store.Load()
	switch {
	case errors.Is(err, ErrNotFound):
		r.log.Info("settings: no persisted record, adopting controller values",
			zap.String("path", r.store.Path()))
		if err := r.store.Save(current); err != nil {
			return ActionNone, err
		}
		return ActionCreated, nil

	case errors.Is(err, ErrCorrupt):
		dst, qerr := r.store.Quarantine(r.now())
		if qerr != nil {
			return ActionNone, qerr
		}
		r.log.Warn("settings: persisted record corrupt, quarantined",
			zap.String("path", r.store.Path()),
			zap.String("quarantine", dst),
			zap.Error(err))
		if err := r.store.Save(current); err != nil {
			return ActionNone, err
		}
		return ActionRecreated, nil

	case err != nil:
		return ActionNone, err
	}

	diff := stored.Diff(current)
	if len(diff) == 0 {
		return ActionNone, nil
	}

	names := make([]string, len(diff))
	for i, reg := range diff {
		names[i] = reg.Name()
	}
	r.log.Info("settings: controller drifted, restoring persisted record",
		zap.Strings("registers", names))

	if err := r.push(stored); err != nil {
		return ActionNone, err
	}
	return ActionPushed, nil
}

// Apply adopts remotely supplied settings when they differ from the live block.
// The record is persisted BEFORE the write so a failed write converges on the next Reconcile.
func (r *Reconciler) Apply(next, current Record) (bool, error) {
	if next == current {
		return false, nil
	}
	if err := r.store.Save(next); err != nil {
		return false, err
	}
	if err := r.push(next); err != nil {
		return false, err
	}
	r.log.Info("settings: applied new settings", zap.Int("changed", len(next.Diff(current))))
	return true, nil
}

// Parse validates a remotely supplied settings document.
func (r *Reconciler) Parse(data []byte) (Record, error) {
	return r.store.Parse(data)
}

// Reset pulses one of the reset registers.
func (r *Reconciler) Reset(target registers.Register) error {
	switch target {
	case registers.ResetBreaktank, registers.ResetHydrophore, registers.ResetPump1, registers.ResetPump2:
	default:
		return fmt.Errorf("settings: %s is not a reset register", target)
	}
	if err := r.dev.WriteSingleRegister(target.Offset(), 1); err != nil {
		return fmt.Errorf("settings: reset %s: %w", target, err)
	}
	return nil
}

func (r *Reconciler) push(rec Record) error {
	if err := r.dev.WriteMultipleRegisters(registers.SettingsFirst.Offset(), rec.Words()); err != nil {
		return fmt.Errorf("settings: write block: %w", err)
	}
	return nil
}
