// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the OmniEmployee backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "backend is not reachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsUnreachable checks if an error indicates the backend is not running.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnreachable
	}
	return errors.Is(err, ErrUnreachable)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend API base URL (default: http://localhost:8765)
	BaseURL string

	// Timeout for non-streaming requests (default: 120s, matching the
	// slowest agent turn the backend is allowed to take)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://localhost:8765",
		Timeout: 120 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the OmniEmployee backend API.
// It holds no mutable state beyond its base URL and is safe for
// concurrent use.
//
// Example:
//
//	client := api.NewClient()
//	info, err := client.GetAgentInfo(ctx)
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:8765"
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// getJSON issues a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.config.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	return c.doJSON(req, out)
}

// postJSON issues a POST request with an optional JSON body and decodes
// the JSON response into out.
func (c *Client) postJSON(ctx context.Context, path string, query url.Values, body interface{}, out interface{}) error {
	u := c.config.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, reader)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.doJSON(req, out)
}

// doJSON executes a request and decodes the response body.
func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Try to read a structured error message
		var apiErr struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Detail != "" {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: apiErr.Detail}
		}
		return &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "request failed: " + resp.Status,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends a chat request and returns the complete response (non-streaming).
func (c *Client) Chat(ctx context.Context, message, sessionID string) (*ChatResponse, error) {
	reqBody := ChatRequest{
		Message:   message,
		SessionID: sessionID,
	}

	var result ChatResponse
	if err := c.postJSON(ctx, "/api/chat", nil, reqBody, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ChatStream opens a streaming chat request and calls the callback for
// each decoded event, in arrival order, as soon as it is decoded.
// Returns the tool-call list carried by the terminal done event, or an
// empty list if the stream ends via an error event or connection failure.
func (c *Client) ChatStream(ctx context.Context, message, sessionID string, callback EventCallback) ([]ToolCallSummary, error) {
	query := url.Values{}
	query.Set("message", message)
	query.Set("session_id", sessionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/chat/stream?"+query.Encode(), nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// Use a client without timeout for streaming (timeout handled via context)
	streamClient := &http.Client{}

	resp, err := streamClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "stream request failed: " + resp.Status,
		}
	}

	reader := NewEventReader(resp.Body)
	return reader.Process(ctx, callback)
}

// =============================================================================
// AGENT & MEMORY
// =============================================================================

// GetAgentInfo retrieves the agent's capabilities and configuration.
func (c *Client) GetAgentInfo(ctx context.Context) (*AgentInfo, error) {
	var result AgentInfo
	if err := c.getJSON(ctx, "/api/agent/info", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMemoryStats retrieves memory system statistics.
func (c *Client) GetMemoryStats(ctx context.Context) (*MemoryStats, error) {
	var result MemoryStats
	if err := c.getJSON(ctx, "/api/stats", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMemoryContext retrieves the memory items relevant to a query.
// An empty query returns current working memory.
func (c *Client) GetMemoryContext(ctx context.Context, query string, limit int) (*MemoryContext, error) {
	q := url.Values{}
	if query != "" {
		q.Set("query", query)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var result MemoryContext
	if err := c.getJSON(ctx, "/api/memory/context", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// KNOWLEDGE
// =============================================================================

// GetKnowledgeTriples retrieves learned knowledge triples for the current user.
func (c *Client) GetKnowledgeTriples(ctx context.Context, limit int) (*KnowledgeTriples, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var result KnowledgeTriples
	if err := c.getJSON(ctx, "/api/knowledge/triples", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetKnowledgeStats retrieves knowledge store statistics.
func (c *Client) GetKnowledgeStats(ctx context.Context) (*KnowledgeStats, error) {
	var result KnowledgeStats
	if err := c.getJSON(ctx, "/api/knowledge/stats", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// USERS
// =============================================================================

// GetUsers retrieves the list of known users and the active user id.
func (c *Client) GetUsers(ctx context.Context) (*UserList, error) {
	var result UserList
	if err := c.getJSON(ctx, "/api/users", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SwitchUser switches the backend's active user.
func (c *Client) SwitchUser(ctx context.Context, userID string) (*UserResponse, error) {
	q := url.Values{}
	q.Set("user_id", userID)

	var result UserResponse
	if err := c.postJSON(ctx, "/api/user/switch", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateUser creates a new user and switches to it.
func (c *Client) CreateUser(ctx context.Context, userID string) (*UserResponse, error) {
	q := url.Values{}
	q.Set("user_id", userID)

	var result UserResponse
	if err := c.postJSON(ctx, "/api/user/create", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// SESSION
// =============================================================================

// ClearChat clears the server-side conversation context for a session.
func (c *Client) ClearChat(ctx context.Context, sessionID string) error {
	q := url.Values{}
	if sessionID != "" {
		q.Set("session_id", sessionID)
	}
	return c.postJSON(ctx, "/api/chat/clear", q, nil, nil)
}
