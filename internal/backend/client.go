// Package backend talks to the booking backend. The backend dispatches on a
// single URL using the "api" query or form parameter.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/models"
)

var (
	ErrNotConfigured = errors.New("booking backend url is not configured")
	ErrUnsuccessful  = errors.New("booking backend reported failure")
)

// placeholderMarker identifies the unedited deployment placeholder, which is
// treated the same as an empty URL.
const placeholderMarker = "YOUR_"

const maxResponseBytes = 4 << 20

type dashboardResponse struct {
	Success  bool              `json:"success"`
	Today    models.DaySummary `json:"today"`
	Tomorrow models.DaySummary `json:"tomorrow"`
}

type searchResponse struct {
	Success bool                  `json:"success"`
	Results []models.SearchResult `json:"results"`
}

// Client issues the three backend operations: dashboard, search and subscribe.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for baseURL. A zero timeout leaves requests
// unbounded apart from the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSpace(baseURL),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// Configured reports whether a usable backend URL is set.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != "" && !strings.Contains(c.baseURL, placeholderMarker)
}

// Dashboard fetches the combined today/tomorrow snapshot.
func (c *Client) Dashboard(ctx context.Context) (models.DashboardSnapshot, error) {
	var payload dashboardResponse
	if err := c.getJSON(ctx, url.Values{"api": {"dashboard"}}, &payload); err != nil {
		return models.DashboardSnapshot{}, fmt.Errorf("fetch dashboard: %w", err)
	}
	if !payload.Success {
		return models.DashboardSnapshot{}, ErrUnsuccessful
	}
	return models.DashboardSnapshot{Today: payload.Today, Tomorrow: payload.Tomorrow}, nil
}

// Search looks up bookings by guest name.
func (c *Client) Search(ctx context.Context, guest string) ([]models.SearchResult, error) {
	var payload searchResponse
	if err := c.getJSON(ctx, url.Values{"api": {"search"}, "guest": {guest}}, &payload); err != nil {
		return nil, fmt.Errorf("search bookings: %w", err)
	}
	if !payload.Success {
		return nil, ErrUnsuccessful
	}
	return payload.Results, nil
}

// Subscribe registers a serialized push subscription. The backend's response
// body is not interpreted.
func (c *Client) Subscribe(ctx context.Context, subscription []byte, userAgent string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	form := url.Values{}
	form.Set("api", "subscribe")
	form.Set("subscription", string(subscription))
	form.Set("userAgent", userAgent)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build subscribe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("register subscription: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	log.Ctx(ctx).Debug().Int("status", resp.StatusCode).Msg("Subscription forwarded to booking backend")
	return nil
}

func (c *Client) getJSON(ctx context.Context, params url.Values, dst any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	endpoint, err := c.endpoint(params)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(dst); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}

func (c *Client) endpoint(params url.Values) (string, error) {
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse backend url: %w", err)
	}
	query := parsed.Query()
	for key, values := range params {
		query[key] = values
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
