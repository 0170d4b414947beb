// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/tamzrod/sanitrax-ctrl/internal/config"
	pmodbus "github.com/tamzrod/sanitrax-ctrl/internal/poller/modbus"
)

// Build constructs a Poller over a freshly opened RTU link.
// The returned Client is the same link, used for setpoint writes.
// ONE attempt, no retries, no semantics.
func Build(d cfg.DeviceConfig) (*Poller, Client, func() error, error) {
	client, err := pmodbus.New(pmodbus.Config{
		Port:     d.Port,
		BaudRate: d.BaudRate,
		DataBits: d.DataBits,
		Parity:   d.Parity,
		StopBits: d.StopBits,
		SlaveID:  d.SlaveID,
		Timeout:  time.Duration(d.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	p, err := New(Config{Read: FullBlock}, client)
	if err != nil {
		client.Close()
		return nil, nil, nil, err
	}

	return p, client, client.Close, nil
}
