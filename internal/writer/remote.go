// internal/writer/remote.go
package writer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
	"github.com/tamzrod/sanitrax-ctrl/internal/settings"
	"github.com/tamzrod/sanitrax-ctrl/internal/snapshot"
	"github.com/tamzrod/sanitrax-ctrl/internal/writer/api"
)

// remoteAPI is the exact contract the remote writer uses.
type remoteAPI interface {
	Actions(ctx context.Context, key string) (api.Actions, error)
	NewSettings(ctx context.Context, key string) ([]byte, error)
	Update(ctx context.Context, key, location string, value any) error
	History(ctx context.Context, key, metric string, value any) error
}

// Control is the controller-side half of operator actions.
type Control interface {
	Reset(target registers.Register) error
	Apply(next, current settings.Record) (bool, error)
	Parse(data []byte) (settings.Record, error)
}

// RemoteWriter services pending operator actions, then publishes status and history.
// Every sub-call is independent: a failure is logged and the rest still run.
type RemoteWriter struct {
	api remoteAPI
	ctl Control
	key string
	log *zap.Logger
	now func() time.Time
}

func NewRemote(c remoteAPI, ctl Control, key string, log *zap.Logger) *RemoteWriter {
	if log == nil {
		log = zap.NewNop()
	}
	return &RemoteWriter{api: c, ctl: ctl, key: key, log: log, now: time.Now}
}

// Write returns the aggregate of every failed sub-call. It never aborts early.
func (w *RemoteWriter) Write(ctx context.Context, s *snapshot.Snapshot) error {
	var errs error

	errs = multierr.Append(errs, w.actions(ctx, s))

	if err := w.api.Update(ctx, w.key, api.LocationStatus, s.Status(w.now())); err != nil {
		w.log.Warn("remote: status publish failed", zap.Error(err))
		errs = multierr.Append(errs, err)
	}

	for _, m := range s.History() {
		if err := w.api.History(ctx, w.key, m.Name, m.Value); err != nil {
			w.log.Warn("remote: history publish failed", zap.String("metric", m.Name), zap.Error(err))
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}

// actions applies pending resets and staged settings.
// A flag is cleared remotely only after its action succeeded on the controller.
func (w *RemoteWriter) actions(ctx context.Context, s *snapshot.Snapshot) error {
	acts, err := w.api.Actions(ctx, w.key)
	if err != nil {
		w.log.Warn("remote: pending actions unavailable", zap.Error(err))
		return err
	}

	var errs error

	resets := []struct {
		pending bool
		flag    string
		reg     registers.Register
	}{
		{acts.ResetBreaktank, "resetBreaktank", registers.ResetBreaktank},
		{acts.ResetHydrophore, "resetHydrophore", registers.ResetHydrophore},
		{acts.ResetPump1, "resetPump1", registers.ResetPump1},
		{acts.ResetPump2, "resetPump2", registers.ResetPump2},
	}
	for _, r := range resets {
		if !r.pending {
			continue
		}
		if err := w.ctl.Reset(r.reg); err != nil {
			w.log.Warn("remote: reset failed", zap.String("action", r.flag), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		w.log.Info("remote: reset executed", zap.String("action", r.flag))
		errs = multierr.Append(errs, w.clear(ctx, r.flag))
	}

	if acts.ApplyChanges {
		if err := w.apply(ctx, s); err != nil {
			w.log.Warn("remote: apply settings failed", zap.Error(err))
			errs = multierr.Append(errs, err)
		} else {
			errs = multierr.Append(errs, w.clear(ctx, "applyChanges"))
		}
	}

	return errs
}

func (w *RemoteWriter) apply(ctx context.Context, s *snapshot.Snapshot) error {
	data, err := w.api.NewSettings(ctx, w.key)
	if err != nil {
		return err
	}
	next, err := w.ctl.Parse(data)
	if err != nil {
		return fmt.Errorf("remote: staged settings: %w", err)
	}

	applied, err := w.ctl.Apply(next, settings.FromNormalized(s.Registers))
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	if err := w.api.Update(ctx, w.key, api.LocationCurrentSettings, next); err != nil {
		w.log.Warn("remote: settings echo failed", zap.Error(err))
	}
	return nil
}

func (w *RemoteWriter) clear(ctx context.Context, flag string) error {
	err := w.api.Update(ctx, w.key, api.LocationActions, map[string]bool{flag: false})
	if err != nil {
		w.log.Warn("remote: clearing action flag failed", zap.String("action", flag), zap.Error(err))
	}
	return err
}
