// internal/writer/builder.go
package writer

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	cfg "github.com/tamzrod/sanitrax-ctrl/internal/config"
	"github.com/tamzrod/sanitrax-ctrl/internal/writer/api"
)

// Build selects the sink for the configured mode.
// Assumes config has already passed Validate and Normalize.
func Build(c *cfg.Config, ctl Control, console io.Writer, log *zap.Logger) (Writer, error) {
	switch c.Sink.Mode {
	case cfg.ModeConsole:
		return NewConsole(console), nil

	case cfg.ModeLocal:
		return NewLocal(c.Sink.LocalDir), nil

	case cfg.ModeRemote:
		retries := 0
		if c.API.Retries != nil {
			retries = *c.API.Retries
		}
		client, err := api.New(api.Config{
			BaseURL:        c.API.BaseURL,
			ConnectTimeout: time.Duration(c.API.ConnectTimeoutMs) * time.Millisecond,
			ReadTimeout:    time.Duration(c.API.ReadTimeoutMs) * time.Millisecond,
			Retries:        retries,
		})
		if err != nil {
			return nil, err
		}
		return NewRemote(client, ctl, c.Sink.ModuleKey, log.Named("remote")), nil

	default:
		return nil, fmt.Errorf("writer: unknown sink mode %q", c.Sink.Mode)
	}
}
