// cmd/sanitrax/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/sanitrax-ctrl/internal/config"
	"github.com/tamzrod/sanitrax-ctrl/internal/counter"
	"github.com/tamzrod/sanitrax-ctrl/internal/csvlog"
	"github.com/tamzrod/sanitrax-ctrl/internal/cycle"
	"github.com/tamzrod/sanitrax-ctrl/internal/decode"
	"github.com/tamzrod/sanitrax-ctrl/internal/gps"
	"github.com/tamzrod/sanitrax-ctrl/internal/lock"
	"github.com/tamzrod/sanitrax-ctrl/internal/poller"
	"github.com/tamzrod/sanitrax-ctrl/internal/settings"
	"github.com/tamzrod/sanitrax-ctrl/internal/writer"
)

const usage = "usage: sanitrax [config.yaml] [console|local|remote]"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes ONE poll cycle and returns the process exit status.
func run(args []string) int {
	if len(args) > 2 {
		fmt.Fprintln(os.Stderr, usage)
		return 64
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg := &config.Config{}
	if len(args) > 0 {
		var err error
		cfg, err = config.Load(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
			return 78
		}
	}
	if len(args) > 1 {
		cfg.Sink.Mode = args[1]
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config validation failed: %v\n", err)
		return 78
	}
	config.Normalize(cfg)

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed: %v\n", err)
		return 78
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Single instance
	// --------------------

	lk, err := lock.Acquire(ctx, cfg.Lock.File, time.Duration(cfg.Lock.TimeoutMs)*time.Millisecond)
	if err != nil {
		err = cycle.Classify("acquire lock", err)
		logger.Error("unable to acquire lock, quitting",
			zap.String("file", cfg.Lock.File),
			zap.Stringer("kind", cycle.KindOf(err)),
			zap.Error(err))
		return exitStatus(err)
	}
	defer lk.Release()

	// --------------------
	// Build pipeline
	// --------------------

	p, dev, closeDevice, err := poller.Build(cfg.Device)
	if err != nil {
		err = &cycle.Error{Kind: cycle.KindTransport, Op: "open device", Err: err}
		logger.Error("cannot connect to modbus slave",
			zap.String("port", cfg.Device.Port),
			zap.Stringer("kind", cycle.KindOf(err)),
			zap.Error(err))
		return exitStatus(err)
	}
	defer closeDevice()

	store, err := settings.NewStore(cfg.Storage.SettingsFile)
	if err != nil {
		logger.Error("settings store setup failed", zap.Error(err))
		return 70
	}
	reconciler := settings.NewReconciler(store, dev, logger.Named("settings"))

	w, err := writer.Build(cfg, reconciler, os.Stdout, logger)
	if err != nil {
		logger.Error("writer setup failed", zap.Error(err))
		return 70
	}

	deps := cycle.Deps{
		Reader: p,
		Scaling: decode.Scaling{
			VacuumRawOffset:    cfg.Scaling.VacuumRawOffset,
			VacuumRawSpan:      cfg.Scaling.VacuumRawSpan,
			PumpTempRawRef:     cfg.Scaling.PumpTempRawRef,
			PumpTempRefCelsius: cfg.Scaling.PumpTempRefCelsius,
		},
		Settings: reconciler,
		Counter:  counter.NewStore(cfg.Storage.WaterCounterFile, logger.Named("counter")),
		GPS:      gps.NewReader(cfg.Storage.GPSFile, logger.Named("gps")),
		Writer:   w,
		Log:      logger,
	}
	if *cfg.CSVLog.Enabled {
		deps.RawLog = csvlog.New(cfg.CSVLog.Dir)
	}

	// --------------------
	// One cycle
	// --------------------

	res := cycle.Run(ctx, deps)
	return exitStatus(res.Err)
}

func newLogger(c config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = lvl
	zc.Encoding = c.Format
	if c.Format == "console" {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return zc.Build()
}

// exitStatus maps a run failure onto the process exit status.
// An unreachable controller or a busy lock is an expected outcome of a scheduled run:
// the log carries the kind and the process exits clean.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	switch cycle.KindOf(err) {
	case cycle.KindTransport, cycle.KindLock:
		return 0
	}
	return int(errorCode(err))
}

// errorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns 1 (generic error).
func errorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coderA interface{ Code() uint16 }
	type coderB interface{ ErrorCode() uint16 }

	var a coderA
	if errors.As(err, &a) {
		return a.Code()
	}
	var b coderB
	if errors.As(err, &b) {
		return b.ErrorCode()
	}

	return 1
}
