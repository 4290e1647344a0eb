package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	apiPath   = "/api/v1"
	userAgent = "zonehunt-cli"
)

// Client talks to a zonehunt server. The director key, when set, is sent as
// a bearer token; the server only checks it on director routes.
type Client struct {
	server      string
	directorKey string
	http        *http.Client
}

// NewClient creates a client for the server at serverURL
func NewClient(serverURL, directorKey string) *Client {
	return &Client{
		server:      strings.TrimSuffix(serverURL, "/"),
		directorKey: directorKey,
		http:        &http.Client{Timeout: 30 * time.Second},
	}
}

// ServerError is an error body returned by the server
type ServerError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Health fetches the server's liveness summary
func (c *Client) Health(ctx context.Context) (HealthResult, error) {
	var result HealthResult
	err := c.call(ctx, http.MethodGet, apiPath+"/health", nil, &result)
	return result, err
}

// RegisterAccount reserves username behind password
func (c *Client) RegisterAccount(ctx context.Context, username, password string) (Account, error) {
	var result Account
	err := c.call(ctx, http.MethodPost, apiPath+"/accounts", credentials(username, password), &result)
	return result, err
}

// VerifyAccount checks a username and password without joining
func (c *Client) VerifyAccount(ctx context.Context, username, password string) (VerifyResult, error) {
	var result VerifyResult
	err := c.call(ctx, http.MethodPost, apiPath+"/accounts/verify", credentials(username, password), &result)
	return result, err
}

// director sends a director command; every director route answers with the
// resulting game view.
func (c *Client) director(ctx context.Context, method, path string, body any) (GameState, error) {
	var view GameState
	err := c.call(ctx, method, directorPath+path, body, &view)
	return view, err
}

// directorEvents opens the director SSE stream. The stream has no timeout;
// cancel ctx to disconnect.
func (c *Client) directorEvents(ctx context.Context) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, directorPath+"/events", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	stream := &http.Client{Transport: c.http.Transport}
	resp, err := stream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.server+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if c.directorKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.directorKey)
	}
	return req, nil
}

func credentials(username, password string) map[string]string {
	return map[string]string{"username": username, "password": password}
}

func (c *Client) call(ctx context.Context, method, path string, body, result any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope struct {
			Error ServerError `json:"error"`
		}
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Code != "" {
			envelope.Error.Status = resp.StatusCode
			return &envelope.Error
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if result == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
