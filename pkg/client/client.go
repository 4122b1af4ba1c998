// Package client is a typed HTTP client for the AydaMarket API. It attaches
// the bearer token captured at login to every subsequent request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// SetToken installs a bearer token obtained outside Login (seed tooling,
// tests with pre-issued tokens).
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int               `json:"-"`
	Message    string            `json:"error"`
	RequestID  string            `json:"request_id"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("api: %d %s (request %s)", e.StatusCode, e.Message, e.RequestID)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
