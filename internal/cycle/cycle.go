// internal/cycle/cycle.go
package cycle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tamzrod/sanitrax-ctrl/internal/decode"
	"github.com/tamzrod/sanitrax-ctrl/internal/gps"
	"github.com/tamzrod/sanitrax-ctrl/internal/poller"
	"github.com/tamzrod/sanitrax-ctrl/internal/registers"
	"github.com/tamzrod/sanitrax-ctrl/internal/settings"
	"github.com/tamzrod/sanitrax-ctrl/internal/snapshot"
	"github.com/tamzrod/sanitrax-ctrl/internal/writer"
)

// ---- collaborators ----

type Reader interface {
	Run(ctx context.Context) poller.PollResult
}

type Reconciler interface {
	Reconcile(current settings.Record) (settings.Action, error)
}

type WaterCounter interface {
	Update(pulse int64) (int64, error)
}

type GPSReader interface {
	Read() gps.Fix
}

type RawLog interface {
	Append(t time.Time, raw registers.Raw) error
}

// Deps wires one cycle. RawLog may be nil.
type Deps struct {
	Reader   Reader
	Scaling  decode.Scaling
	Settings Reconciler
	Counter  WaterCounter
	GPS      GPSReader
	RawLog   RawLog
	Writer   writer.Writer
	Log      *zap.Logger
}

// Health codes of a finished cycle.
const (
	HealthUnknown  uint16 = 0
	HealthOK       uint16 = 1
	HealthError    uint16 = 2
	HealthDegraded uint16 = 3
)

// Result is what one cycle reports back.
type Result struct {
	ID       string
	Health   uint16
	Snapshot *snapshot.Snapshot

	// Err is the failure that aborted the cycle.
	Err error

	// Contained lists failures that were logged and skipped.
	Contained []error
}

func (r *Result) contain(op string, err error) {
	r.Contained = append(r.Contained, Classify(op, err))
}

// Run executes exactly one poll cycle:
//
//	read -> raw log -> normalize -> reconcile settings -> water counter
//	-> gps -> assemble -> publish
//
// Transport and lookup failures abort with nothing published.
// Everything after a successful read is best effort except assembly.
func Run(ctx context.Context, d Deps) Result {
	res := Result{ID: uuid.NewString(), Health: HealthUnknown}

	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("cycle", res.ID))

	// ---- read ----
	pr := d.Reader.Run(ctx)
	if pr.Err != nil {
		res.Health = HealthError
		res.Err = &Error{Kind: KindTransport, Op: "read registers", Err: pr.Err}
		log.Error("cycle aborted", zap.Error(res.Err))
		return res
	}
	log.Debug("registers read", zap.Time("at", pr.At))

	// ---- raw log ----
	if d.RawLog != nil {
		if err := d.RawLog.Append(pr.At, pr.Registers); err != nil {
			log.Warn("raw log append failed", zap.Error(err))
			res.contain("raw log", err)
		}
	}

	// ---- normalize ----
	n := decode.Normalize(pr.Registers, d.Scaling)

	// ---- settings ----
	act, err := d.Settings.Reconcile(settings.FromNormalized(n))
	if err != nil {
		log.Warn("settings reconcile failed", zap.Error(err))
		res.contain("reconcile settings", err)
	} else if act != settings.ActionNone {
		log.Info("settings reconciled", zap.Stringer("action", act))
	}

	// ---- water counter ----
	sum, err := d.Counter.Update(n[registers.WaterCounter].Int())
	if err != nil {
		log.Warn("water counter not persisted", zap.Error(err))
		res.contain("water counter", err)
	}

	// ---- assemble ----
	snap, err := snapshot.Assemble(snapshot.Input{
		At:         pr.At,
		Raw:        pr.Registers,
		Normalized: n,
		WaterSum:   sum,
		GPS:        d.GPS.Read(),
	})
	if err != nil {
		res.Health = HealthError
		res.Err = Classify("assemble snapshot", err)
		log.Error("cycle aborted", zap.Error(res.Err))
		return res
	}
	if snap.WaterFactorMissing() {
		log.Warn("water meter factor is 0, total water usage reported as 0")
	}
	res.Snapshot = snap

	// ---- publish ----
	if err := d.Writer.Write(ctx, snap); err != nil {
		log.Warn("publish incomplete", zap.Error(err))
		res.Contained = append(res.Contained, &Error{Kind: KindRemoteUnavailable, Op: "publish", Err: err})
	}

	res.Health = HealthOK
	if len(res.Contained) > 0 {
		res.Health = HealthDegraded
	}
	log.Info("cycle complete",
		zap.Uint16("health", res.Health),
		zap.Int("contained_errors", len(res.Contained)),
		zap.Int64("water_sum", sum))
	return res
}
