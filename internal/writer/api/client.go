// internal/writer/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrStatus is returned when the server answers with a non-2xx status.
var ErrStatus = errors.New("api: unexpected status")

// Actions are the operator requests pending for a module.
type Actions struct {
	ResetBreaktank  bool `json:"resetBreaktank"`
	ResetHydrophore bool `json:"resetHydrophore"`
	ResetPump1      bool `json:"resetPump1"`
	ResetPump2      bool `json:"resetPump2"`
	ApplyChanges    bool `json:"applyChanges"`
}

// Locations of the update document.
const (
	LocationStatus          = "status"
	LocationActions         = "/settings/actions"
	LocationCurrentSettings = "settings/current"
)

// Update is the body of a database update.
type Update struct {
	ID       string `json:"id"`
	Location string `json:"location"`
	Value    any    `json:"value"`
}

type Config struct {
	BaseURL        string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// Retries is the number of extra attempts after a transport failure.
	// HTTP error statuses are NOT retried.
	Retries int
}

// Client talks JSON over HTTP to the telemetry/control service.
// Stateless: every call is independent.
type Client struct {
	base    string
	http    *http.Client
	retries int
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api: base url required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("api: base url: %w", err)
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 2 * time.Second
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 2 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}

	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		MaxIdleConns:          2,
		IdleConnTimeout:       30 * time.Second,
	}

	return &Client{
		base: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Transport: tr,
			Timeout:   cfg.ConnectTimeout + cfg.ReadTimeout,
		},
		retries: cfg.Retries,
	}, nil
}

// ---- endpoints ----

func (c *Client) Actions(ctx context.Context, key string) (Actions, error) {
	var a Actions
	err := c.getJSON(ctx, "/database/modules/"+url.PathEscape(key)+"/settings/actions", &a)
	return a, err
}

// NewSettings returns the raw settings document staged for a module.
// Validation is the caller's job.
func (c *Client) NewSettings(ctx context.Context, key string) ([]byte, error) {
	return c.get(ctx, "/database/modules/"+url.PathEscape(key)+"/settings/new")
}

func (c *Client) Update(ctx context.Context, key, location string, value any) error {
	return c.postJSON(ctx, "/database/update", Update{ID: key, Location: location, Value: value})
}

func (c *Client) History(ctx context.Context, key, metric string, value any) error {
	return c.postJSON(ctx, "/api/v2/modules/"+url.PathEscape(key)+"/history/"+url.PathEscape(metric), value)
}

// ---- transport ----

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: GET %s: decode: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("api: POST %s: encode: %w", path, err)
	}
	_, err = c.do(ctx, http.MethodPost, path, b)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, retry, err := c.once(ctx, method, path, body)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !retry {
			break
		}
	}
	return nil, lastErr
}

// once performs a single request. retry reports whether the failure was at the transport level.
func (c *Client) once(ctx context.Context, method, path string, body []byte) (out []byte, retry bool, err error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return nil, false, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, true, fmt.Errorf("api: %s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, fmt.Errorf("%w: %s %s: %d", ErrStatus, method, path, resp.StatusCode)
	}
	return data, false, nil
}
