// internal/config/config.go
package config

type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Scaling ScalingConfig `yaml:"scaling"`
	Storage StorageConfig `yaml:"storage"`
	Sink    SinkConfig    `yaml:"sink"`
	API     APIConfig     `yaml:"api"`
	CSVLog  CSVLogConfig  `yaml:"csv_log"`
	Lock    LockConfig    `yaml:"lock"`
	Log     LogConfig     `yaml:"log"`
}

// ---- DEVICE (serial RTU link) ----

type DeviceConfig struct {
	Port      string `yaml:"port"`
	BaudRate  int    `yaml:"baud_rate"`
	DataBits  int    `yaml:"data_bits"`
	Parity    string `yaml:"parity"` // N, E or O
	StopBits  int    `yaml:"stop_bits"`
	SlaveID   uint8  `yaml:"slave_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- SCALING ----

// ScalingConfig holds the analog conversion constants.
// Zero means "use the default".
type ScalingConfig struct {
	VacuumRawOffset    float64 `yaml:"vacuum_raw_offset"`
	VacuumRawSpan      float64 `yaml:"vacuum_raw_span"`
	PumpTempRawRef     float64 `yaml:"pump_temp_raw_ref"`
	PumpTempRefCelsius float64 `yaml:"pump_temp_ref_celsius"`
}

// ---- LOCAL STATE FILES ----

type StorageConfig struct {
	SettingsFile     string `yaml:"settings_file"`
	WaterCounterFile string `yaml:"water_counter_file"`
	GPSFile          string `yaml:"gps_file"`
}

// ---- SINK ----

const (
	ModeConsole = "console"
	ModeLocal   = "local"
	ModeRemote  = "remote"
)

type SinkConfig struct {
	Mode      string `yaml:"mode"`
	LocalDir  string `yaml:"local_dir"`
	ModuleKey string `yaml:"module_key"`
}

// ---- REMOTE API ----

type APIConfig struct {
	BaseURL          string `yaml:"base_url"`
	ConnectTimeoutMs int    `yaml:"connect_timeout_ms"`
	ReadTimeoutMs    int    `yaml:"read_timeout_ms"`
	Retries          *int   `yaml:"retries"`
}

// ---- CSV LOG ----

type CSVLogConfig struct {
	// Enabled defaults to true in remote mode only.
	Enabled *bool  `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// ---- LOCK ----

type LockConfig struct {
	File      string `yaml:"file"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}
