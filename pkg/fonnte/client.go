// Package fonnte is a minimal client for the Fonnte WhatsApp send API.
package fonnte

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.fonnte.com"

// DefaultCountryCode is prepended by Fonnte to local numbers (Indonesia).
const DefaultCountryCode = "62"

// ErrMissingToken is returned when Send is called without an API token.
var ErrMissingToken = errors.New("fonnte: API token not configured")

// SendResult is the subset of the Fonnte send response the application cares about.
type SendResult struct {
	Status bool   `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Client calls the Fonnte send endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Fonnte client with a 10 second request timeout.
func NewClient() *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a fake server.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// Send delivers a WhatsApp message to the target number using the given API
// token. The token is passed per-call because it lives in the settings table
// and may change at runtime.
func (c *Client) Send(ctx context.Context, token, target, message string) (*SendResult, error) {
	if token == "" {
		return &SendResult{Status: false, Reason: "API token not configured."}, ErrMissingToken
	}

	form := url.Values{}
	form.Set("target", target)
	form.Set("message", message)
	form.Set("countryCode", DefaultCountryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("fonnte: building request: %w", err)
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SendResult{Status: false, Reason: "A network error occurred."}, fmt.Errorf("fonnte: sending message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SendResult{Status: false, Reason: fmt.Sprintf("HTTP Error: %d", resp.StatusCode)},
			fmt.Errorf("fonnte: unexpected status %d", resp.StatusCode)
	}

	var result SendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &SendResult{Status: false, Reason: "Invalid API response."}, fmt.Errorf("fonnte: decoding response: %w", err)
	}
	return &result, nil
}
