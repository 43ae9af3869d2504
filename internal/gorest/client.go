// Package gorest is a thin client for the GoRest users collection.
package gorest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/storeqa/storefront-suite/internal/config"
)

// User is the users collection resource.
type User struct {
	ID     int64  `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Gender string `json:"gender,omitempty"`
	Status string `json:"status,omitempty"`
}

// FieldError is one entry of a 422 validation response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Response is the raw outcome of a call. Non-2xx statuses are not errors.
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to parse response (status %d): %w", r.StatusCode, err)
	}
	return nil
}

// Client talks to the users collection at cfg.BaseURL.
type Client struct {
	config     *config.GorestConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a users API client. A nil httpClient uses http.DefaultClient.
// Requests are throttled to cfg.RateLimit per second when it is set.
func NewClient(cfg *config.GorestConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	return &Client{
		config:     cfg,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// ListUsers fetches the first page of users.
func (c *Client) ListUsers(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, c.config.BaseURL, nil)
}

// GetUser fetches a single user.
func (c *Client) GetUser(ctx context.Context, id int64) (*Response, error) {
	return c.do(ctx, http.MethodGet, c.config.UserURL(id), nil)
}

// CreateUser posts a new user.
func (c *Client) CreateUser(ctx context.Context, user User) (*Response, error) {
	return c.do(ctx, http.MethodPost, c.config.BaseURL, user)
}

// UpdateUser replaces the given fields of a user.
func (c *Client) UpdateUser(ctx context.Context, id int64, fields map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodPut, c.config.UserURL(id), fields)
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) (*Response, error) {
	return c.do(ctx, http.MethodDelete, c.config.UserURL(id), nil)
}

func (c *Client) do(ctx context.Context, method, url string, payload any) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait for %s %s: %w", method, url, err)
	}

	var body io.Reader
	if payload != nil {
		reqBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Printf("%s %s -> %d", method, url, resp.StatusCode)
	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// UniqueEmail returns an address that will not collide with earlier runs.
func UniqueEmail(prefix string) string {
	if prefix == "" {
		prefix = "user"
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s.%s@storeqa.test", prefix, id[:12])
}
