// internal/config/validate_test.go
package config

import (
	"strings"
	"testing"
)

// helper to build a valid remote config quickly
func remoteConfig() *Config {
	return &Config{
		Sink: SinkConfig{Mode: ModeRemote, ModuleKey: "abc123"},
		API:  APIConfig{BaseURL: "http://172.18.140.8:8080"},
	}
}

// ---- tests ----

func TestValidate_EmptyConfigIsValid(t *testing.T) {
	if err := Validate(&Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RemoteValid(t *testing.T) {
	if err := Validate(remoteConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	neg := -1

	cases := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"unknown mode", func(c *Config) { c.Sink.Mode = "firebase" }, "unknown mode"},
		{"remote without key", func(c *Config) { c.Sink.ModuleKey = "" }, "module_key"},
		{"remote without url", func(c *Config) { c.API.BaseURL = "" }, "base_url is required"},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://host" }, "http or https"},
		{"no host", func(c *Config) { c.API.BaseURL = "http://" }, "no host"},
		{"negative retries", func(c *Config) { c.API.Retries = &neg }, "retries"},
		{"parity", func(c *Config) { c.Device.Parity = "X" }, "parity"},
		{"data bits", func(c *Config) { c.Device.DataBits = 9 }, "data_bits"},
		{"stop bits", func(c *Config) { c.Device.StopBits = 3 }, "stop_bits"},
		{"slave id", func(c *Config) { c.Device.SlaveID = 250 }, "slave_id"},
		{"negative timeout", func(c *Config) { c.Device.TimeoutMs = -5 }, "timeout_ms"},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }, "log: unknown level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log: unknown format"},
	}

	for _, tc := range cases {
		c := remoteConfig()
		tc.mutate(c)
		err := Validate(c)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	c := &Config{}
	if err := Validate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Device.BaudRate != 0 || c.Sink.Mode != "" {
		t.Fatalf("Validate mutated config: %+v", c)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	c := &Config{}
	Normalize(c)

	if c.Device.BaudRate != 9600 || c.Device.Parity != "N" || c.Device.SlaveID != 1 || c.Device.TimeoutMs != 1000 {
		t.Fatalf("device defaults: %+v", c.Device)
	}
	if c.Scaling.VacuumRawOffset != 4630 || c.Scaling.VacuumRawSpan != 14050 {
		t.Fatalf("scaling defaults: %+v", c.Scaling)
	}
	if c.Sink.Mode != ModeConsole || c.Sink.LocalDir != "/tmp" {
		t.Fatalf("sink defaults: %+v", c.Sink)
	}
	if *c.API.Retries != 2 || c.API.ConnectTimeoutMs != 2000 {
		t.Fatalf("api defaults: %+v", c.API)
	}
	if *c.CSVLog.Enabled {
		t.Fatalf("csv log must default off outside remote mode")
	}
}

func TestNormalize_RemoteEnablesCSV(t *testing.T) {
	c := remoteConfig()
	Normalize(c)
	if !*c.CSVLog.Enabled {
		t.Fatalf("csv log must default on in remote mode")
	}

	off := false
	c = remoteConfig()
	c.CSVLog.Enabled = &off
	Normalize(c)
	if *c.CSVLog.Enabled {
		t.Fatalf("explicit csv_log.enabled overridden")
	}
}

func TestParse(t *testing.T) {
	doc := `
device:
  port: /dev/ttyUSB3
  timeout_ms: 500
sink:
  mode: remote
  module_key: abc
api:
  base_url: http://localhost:8080
  retries: 0
`
	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Device.Port != "/dev/ttyUSB3" || c.Device.TimeoutMs != 500 {
		t.Fatalf("device: %+v", c.Device)
	}
	if c.API.Retries == nil || *c.API.Retries != 0 {
		t.Fatalf("explicit zero retries lost")
	}

	if _, err := Parse([]byte("device:\n  prot: x\n")); err == nil {
		t.Fatalf("unknown key accepted")
	}

	if c, err := Parse(nil); err != nil || c == nil {
		t.Fatalf("empty document: c=%v err=%v", c, err)
	}
}
