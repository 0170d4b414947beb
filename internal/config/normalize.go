// internal/config/normalize.go
package config

// Defaults. The serial and scaling values match the controller firmware.
const (
	DefaultPort      = "/dev/ttyUSB3"
	DefaultBaudRate  = 9600
	DefaultDataBits  = 8
	DefaultParity    = "N"
	DefaultStopBits  = 1
	DefaultSlaveID   = 1
	DefaultTimeoutMs = 1000

	DefaultVacuumRawOffset    = 4630
	DefaultVacuumRawSpan      = 14050
	DefaultPumpTempRawRef     = 8000
	DefaultPumpTempRefCelsius = 60

	DefaultSettingsFile     = "settings.json"
	DefaultWaterCounterFile = "WaterCounter.json"
	DefaultGPSFile          = "/tmp/gps_data.json"

	DefaultLocalDir = "/tmp"

	DefaultAPITimeoutMs = 2000
	DefaultAPIRetries   = 2

	DefaultCSVDir = "log"

	DefaultLockFile      = "/tmp/sanitrax_mb.lock"
	DefaultLockTimeoutMs = 5000

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ---- device ----
	d := &cfg.Device
	setString(&d.Port, DefaultPort)
	setInt(&d.BaudRate, DefaultBaudRate)
	setInt(&d.DataBits, DefaultDataBits)
	setString(&d.Parity, DefaultParity)
	setInt(&d.StopBits, DefaultStopBits)
	if d.SlaveID == 0 {
		d.SlaveID = DefaultSlaveID
	}
	setInt(&d.TimeoutMs, DefaultTimeoutMs)

	// ---- scaling ----
	s := &cfg.Scaling
	setFloat(&s.VacuumRawOffset, DefaultVacuumRawOffset)
	setFloat(&s.VacuumRawSpan, DefaultVacuumRawSpan)
	setFloat(&s.PumpTempRawRef, DefaultPumpTempRawRef)
	setFloat(&s.PumpTempRefCelsius, DefaultPumpTempRefCelsius)

	// ---- storage ----
	setString(&cfg.Storage.SettingsFile, DefaultSettingsFile)
	setString(&cfg.Storage.WaterCounterFile, DefaultWaterCounterFile)
	setString(&cfg.Storage.GPSFile, DefaultGPSFile)

	// ---- sink ----
	setString(&cfg.Sink.Mode, ModeConsole)
	setString(&cfg.Sink.LocalDir, DefaultLocalDir)

	// ---- api ----
	setInt(&cfg.API.ConnectTimeoutMs, DefaultAPITimeoutMs)
	setInt(&cfg.API.ReadTimeoutMs, DefaultAPITimeoutMs)
	if cfg.API.Retries == nil {
		n := DefaultAPIRetries
		cfg.API.Retries = &n
	}

	// ---- csv log (raw history is kept alongside remote publishing) ----
	if cfg.CSVLog.Enabled == nil {
		on := cfg.Sink.Mode == ModeRemote
		cfg.CSVLog.Enabled = &on
	}
	setString(&cfg.CSVLog.Dir, DefaultCSVDir)

	// ---- lock ----
	setString(&cfg.Lock.File, DefaultLockFile)
	setInt(&cfg.Lock.TimeoutMs, DefaultLockTimeoutMs)

	// ---- log ----
	setString(&cfg.Log.Level, DefaultLogLevel)
	setString(&cfg.Log.Format, DefaultLogFormat)
}

func setString(p *string, def string) {
	if *p == "" {
		*p = def
	}
}

func setInt(p *int, def int) {
	if *p == 0 {
		*p = def
	}
}

func setFloat(p *float64, def float64) {
	if *p == 0 {
		*p = def
	}
}
