// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values are accepted wherever Normalize supplies a default.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	d := cfg.Device
	if d.BaudRate < 0 {
		return fmt.Errorf("device: baud_rate must be > 0")
	}
	switch d.DataBits {
	case 0, 7, 8:
	default:
		return fmt.Errorf("device: data_bits must be 7 or 8, got %d", d.DataBits)
	}
	switch d.Parity {
	case "", "N", "E", "O":
	default:
		return fmt.Errorf("device: parity must be N, E or O, got %q", d.Parity)
	}
	switch d.StopBits {
	case 0, 1, 2:
	default:
		return fmt.Errorf("device: stop_bits must be 1 or 2, got %d", d.StopBits)
	}
	if d.SlaveID > 247 {
		return fmt.Errorf("device: slave_id %d out of range 1..247", d.SlaveID)
	}
	if d.TimeoutMs < 0 {
		return fmt.Errorf("device: timeout_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// SCALING
	// ------------------------------------------------------------

	if cfg.Scaling.VacuumRawSpan < 0 {
		return fmt.Errorf("scaling: vacuum_raw_span must be > 0")
	}
	if cfg.Scaling.PumpTempRawRef < 0 {
		return fmt.Errorf("scaling: pump_temp_raw_ref must be > 0")
	}

	// ------------------------------------------------------------
	// SINK + REMOTE API
	// ------------------------------------------------------------

	switch cfg.Sink.Mode {
	case "", ModeConsole, ModeLocal:
	case ModeRemote:
		if cfg.Sink.ModuleKey == "" {
			return fmt.Errorf("sink: module_key is required in remote mode")
		}
		if cfg.API.BaseURL == "" {
			return fmt.Errorf("api: base_url is required in remote mode")
		}
	default:
		return fmt.Errorf("sink: unknown mode %q (want console, local or remote)", cfg.Sink.Mode)
	}

	if cfg.API.BaseURL != "" {
		u, err := url.Parse(cfg.API.BaseURL)
		if err != nil {
			return fmt.Errorf("api: base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("api: base_url must be http or https, got %q", cfg.API.BaseURL)
		}
		if u.Host == "" {
			return fmt.Errorf("api: base_url has no host: %q", cfg.API.BaseURL)
		}
	}
	if cfg.API.ConnectTimeoutMs < 0 || cfg.API.ReadTimeoutMs < 0 {
		return fmt.Errorf("api: timeouts must be >= 0")
	}
	if cfg.API.Retries != nil && *cfg.API.Retries < 0 {
		return fmt.Errorf("api: retries must be >= 0")
	}

	// ------------------------------------------------------------
	// LOCK + LOG
	// ------------------------------------------------------------

	if cfg.Lock.TimeoutMs < 0 {
		return fmt.Errorf("lock: timeout_ms must be >= 0")
	}

	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("log: unknown format %q", cfg.Log.Format)
	}

	return nil
}
