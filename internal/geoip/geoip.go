// Package geoip resolves the viewer's approximate coordinates from their
// public IP so the camera can fly to them. One request, one timeout, and a
// small error taxonomy the UI can phrase for the user.
package geoip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// DefaultEndpoint is the free ip-api.com JSON endpoint.
const DefaultEndpoint = "http://ip-api.com/json/"

// DefaultTimeout bounds the lookup; the render loop is never blocked on it,
// but a spinner this long is as much as anyone will watch.
const DefaultTimeout = 5 * time.Second

// Sentinel errors the UI maps to user-facing messages.
var (
	// ErrTimeout means the lookup did not answer within the deadline.
	ErrTimeout = errors.New("geolocation timed out")
	// ErrUnavailable means the service could not be reached at all.
	ErrUnavailable = errors.New("geolocation service unreachable")
	// ErrDenied means the service answered but refused the lookup.
	ErrDenied = errors.New("geolocation request denied")
	// ErrBadResponse means the service answered with something unusable.
	ErrBadResponse = errors.New("geolocation response malformed")
)

// Location is a successful lookup result.
type Location struct {
	Latitude  float64
	Longitude float64
	City      string
	Country   string
}

// Client performs one-shot lookups.
type Client struct {
	endpoint string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the lookup URL.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient returns a client with the default endpoint and timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse is the ip-api.com wire format. Failures come back as status
// 200 with status "fail" and a message.
type apiResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

// Locate resolves the caller's coordinates. The context bounds the whole
// request; callers that want the default deadline should pass a context
// with DefaultTimeout applied.
func (c *Client) Locate(ctx context.Context) (Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Location{}, ErrTimeout
		}
		return Location{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusTooManyRequests:
		return Location{}, ErrDenied
	case resp.StatusCode != http.StatusOK:
		return Location{}, fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	var api apiResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if api.Status != "success" {
		return Location{}, fmt.Errorf("%w: %s", ErrDenied, api.Message)
	}
	if api.Lat < -90 || api.Lat > 90 || api.Lon < -180 || api.Lon > 180 {
		return Location{}, fmt.Errorf("%w: coordinates out of range", ErrBadResponse)
	}

	return Location{
		Latitude:  api.Lat,
		Longitude: api.Lon,
		City:      api.City,
		Country:   api.Country,
	}, nil
}
