// Package client is the typed consumer of the user API. It speaks the same
// shared api types the server serves, unwraps the response envelope, and
// turns every failure into an *APIError with a stable machine-readable code.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"userdir/internal/api"
)

const defaultTimeout = 10 * time.Second

// APIError is the error type raised for every failed call. Status is the
// HTTP status of the response, or 0 when no response was received at all.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s (status %d): %s", e.Code, e.Status, e.Message)
}

// Client is a typed HTTP client for the user API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a client against baseURL, e.g. "http://localhost:3000/api".
// An empty baseURL falls back to the API_BASE_URL environment variable,
// then to localhost.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("API_BASE_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:3000/api"
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListUsersParams are the optional query parameters of ListUsers.
type ListUsersParams struct {
	Page   int
	Limit  int
	Search string
}

// ListUsers fetches one page of users.
func (c *Client) ListUsers(ctx context.Context, params ListUsersParams) (*api.UsersResponse, error) {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}

	var out api.UsersResponse
	if err := c.do(ctx, http.MethodGet, "/users", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id uint) (*api.UserResponse, error) {
	var out api.UserResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser creates a new user.
func (c *Client) CreateUser(ctx context.Context, req api.CreateUserRequest) (*api.UserResponse, error) {
	var out api.UserResponse
	if err := c.do(ctx, http.MethodPost, "/users", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update to a user.
func (c *Client) UpdateUser(ctx context.Context, id uint, req api.UpdateUserRequest) (*api.UserResponse, error) {
	var out api.UserResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}

// Health fetches the service health payload.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var out api.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one request/response round trip. Transport-level failures carry
// Status 0 and UNKNOWN_ERROR; non-2xx responses are decoded into the error
// envelope and surfaced as an *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return unknownError(err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return unknownError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return unknownError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope api.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error.Code == "" {
			return &APIError{
				Status:  resp.StatusCode,
				Code:    api.CodeUnknownError,
				Message: fmt.Sprintf("unexpected response status %d", resp.StatusCode),
			}
		}
		return &APIError{
			Status:  resp.StatusCode,
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
			Details: envelope.Error.Details,
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{
			Status:  resp.StatusCode,
			Code:    api.CodeUnknownError,
			Message: "malformed response body: " + err.Error(),
		}
	}
	return nil
}

func unknownError(err error) *APIError {
	return &APIError{
		Status:  0,
		Code:    api.CodeUnknownError,
		Message: err.Error(),
	}
}
