// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultEndpoint is where the assistant backend listens in development.
const DefaultEndpoint = "http://127.0.0.1:8000/chat_gen"

// maxErrorBody bounds how much of a non-2xx body is kept for the error message.
const maxErrorBody = 512

// Transport performs one request/response exchange per prompt.
// The prompt is assumed non-empty; callers enforce that.
type Transport interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the endpoint client.
type ClientConfig struct {
	// URL is the full endpoint URL (default: http://127.0.0.1:8000/chat_gen)
	URL string

	// UserAgent is sent with every request when non-empty.
	UserAgent string

	// HTTPClient overrides the underlying client. Tests use this to point
	// at httptest servers. It must not carry a Timeout.
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		URL: DefaultEndpoint,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client posts prompts to the endpoint. It is safe for concurrent use, so
// overlapping exchanges can share one Client.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

var _ Transport = (*Client)(nil)

// NewClient creates a client. A nil config uses DefaultConfig.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.URL == "" {
		config.URL = DefaultEndpoint
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		// No Timeout: a pending exchange waits until the server answers
		// or the context is cancelled.
		httpClient = &http.Client{}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// URL returns the endpoint this client posts to.
func (c *Client) URL() string {
	return c.config.URL
}

// Send posts prompt and returns the reply text.
func (c *Client) Send(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(GenerateRequest{Prompt: prompt})
	if err != nil {
		return "", &TransportError{Kind: KindRequest, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Kind: KindRequest, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Kind: KindNetwork, Message: "request to " + c.config.URL + " failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := "endpoint returned " + resp.Status
		if s := string(bytes.TrimSpace(snippet)); s != "" {
			msg += " (" + s + ")"
		}
		return "", &TransportError{Kind: KindStatus, Message: msg, Status: resp.StatusCode}
	}

	var result GenerateResponse
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&result); err != nil {
		return "", &TransportError{
			Kind:    KindMalformed,
			Message: "failed to decode response",
			Status:  resp.StatusCode,
			Cause:   err,
		}
	}
	// The body must hold exactly one JSON value.
	if _, err := dec.Token(); err != io.EOF {
		return "", &TransportError{
			Kind:    KindMalformed,
			Message: "trailing data after response",
			Status:  resp.StatusCode,
		}
	}
	if result.Ans == nil {
		return "", &TransportError{
			Kind:    KindMalformed,
			Message: `response has no "ans" field`,
			Status:  resp.StatusCode,
		}
	}

	return *result.Ans, nil
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// Ping checks that the endpoint's host answers HTTP at all. Any response,
// including 404 or 405, counts as reachable.
func (c *Client) Ping(ctx context.Context) (int, error) {
	u, err := url.Parse(c.config.URL)
	if err != nil {
		return 0, &TransportError{Kind: KindRequest, Message: "invalid endpoint URL", Cause: err}
	}
	root := u.Scheme + "://" + u.Host + "/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root, nil)
	if err != nil {
		return 0, &TransportError{Kind: KindRequest, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &TransportError{Kind: KindNetwork, Message: "endpoint host " + u.Host + " unreachable", Cause: err}
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()

	return resp.StatusCode, nil
}

// StatusText formats a ping result for humans.
func StatusText(code int) string {
	return strconv.Itoa(code) + " " + http.StatusText(code)
}
