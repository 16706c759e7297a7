// Package thingsboard is a minimal REST client for the telemetry platform.
package thingsboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"aiot_brain/internal/logger"
	"aiot_brain/internal/metrics"
	"aiot_brain/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultLoginTimeout   = 10 * time.Second
	defaultQueryTimeout   = 20 * time.Second
	defaultRequestTimeout = 10 * time.Second

	authHeader     = "X-Authorization"
	maxErrBodySize = 512
	metricsTarget  = "thingsboard"
)

// Errors returned by the client. Every failure wraps exactly one of these.
var (
	ErrAuth   = errors.New("thingsboard login failed")
	ErrFetch  = errors.New("thingsboard query failed")
	ErrCreate = errors.New("thingsboard device creation failed")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Code, e.Body)
}

// Config holds the platform location and tenant credentials.
type Config struct {
	BaseURL  string
	Username string
	Password string

	LoginTimeout   time.Duration
	QueryTimeout   time.Duration
	RequestTimeout time.Duration
}

// Client talks to the platform. It keeps no session: every caller logs in and
// passes its own token.
type Client struct {
	cfg  Config
	http *http.Client
	log  *logger.Logger
}

// NewClient builds a client. A nil httpClient uses a fresh http.Client.
func NewClient(cfg Config, httpClient *http.Client, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.LoginTimeout <= 0 {
		cfg.LoginTimeout = defaultLoginTimeout
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = defaultQueryTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: httpClient, log: log}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Login exchanges the configured credentials for a bearer token.
func (c *Client) Login(ctx context.Context) (token string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(metricsTarget, "login", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.LoginTimeout)
	defer cancel()

	var resp loginResponse
	err = c.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{
		Username: c.cfg.Username,
		Password: c.cfg.Password,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuth, err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: empty token in response", ErrAuth)
	}
	if err := c.inspectToken(resp.Token); err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuth, err)
	}
	return resp.Token, nil
}

// inspectToken rejects tokens that are not JWTs. The signature is the
// platform's business; only the shape and expiry are looked at here.
func (c *Client) inspectToken(token string) error {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return fmt.Errorf("malformed token: %w", err)
	}
	if c.log != nil && claims.ExpiresAt != nil {
		c.log.Debugw("thingsboard_token_issued", "subject", claims.Subject, "expires_at", claims.ExpiresAt.Time)
	}
	return nil
}

type devicePage struct {
	Data []deviceRecord `json:"data"`
}

type deviceRecord struct {
	ID struct {
		ID string `json:"id"`
	} `json:"id"`
	Name string `json:"name"`
}

func (r deviceRecord) toDevice() models.Device {
	return models.Device{ID: r.ID.ID, Name: r.Name}
}

// ListDevices returns the first page (up to 100) of tenant devices.
func (c *Client) ListDevices(ctx context.Context, token string) (devices []models.Device, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(metricsTarget, "list_devices", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	var page devicePage
	if err = c.do(ctx, http.MethodGet, "/api/tenant/devices?pageSize=100&page=0", token, nil, &page); err != nil {
		return nil, fmt.Errorf("%w: list devices: %w", ErrFetch, err)
	}
	devices = make([]models.Device, 0, len(page.Data))
	for _, r := range page.Data {
		devices = append(devices, r.toDevice())
	}
	return devices, nil
}

// FetchTelemetry runs a historical timeseries query.
// A key missing from the result simply has no entry in the returned map.
func (c *Client) FetchTelemetry(ctx context.Context, token string, q Query) (series models.TimeSeries, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(metricsTarget, "fetch_telemetry", start, err) }()

	path, err := q.path()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()

	series = models.TimeSeries{}
	if err = c.do(ctx, http.MethodGet, path, token, nil, &series); err != nil {
		if c.log != nil {
			c.log.Errorw("thingsboard_fetch_failed", "device_id", q.DeviceID, "keys", q.Keys, "err", err)
		}
		return nil, fmt.Errorf("%w: device %s: %w", ErrFetch, q.DeviceID, err)
	}
	return series, nil
}

type createDeviceRequest struct {
	Name string `json:"name"`
}

// CreateDevice registers a new device; the platform assigns its id.
func (c *Client) CreateDevice(ctx context.Context, token, name string) (device models.Device, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(metricsTarget, "create_device", start, err) }()

	if strings.TrimSpace(name) == "" {
		return models.Device{}, fmt.Errorf("%w: empty device name", ErrCreate)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	var rec deviceRecord
	if err = c.do(ctx, http.MethodPost, "/api/device", token, createDeviceRequest{Name: name}, &rec); err != nil {
		return models.Device{}, fmt.Errorf("%w: %q: %w", ErrCreate, name, err)
	}
	if rec.ID.ID == "" {
		return models.Device{}, fmt.Errorf("%w: %q: response carries no id", ErrCreate, name)
	}
	return rec.toDevice(), nil
}

// do sends one JSON request and decodes a 2xx JSON response into out.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(authHeader, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		return &StatusError{Op: method + " " + req.URL.Path, Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
