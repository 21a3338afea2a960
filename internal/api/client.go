package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopfront/internal/metrics"
	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

// TokenSource yields the bearer token to attach to outgoing requests.
// An empty string means no token is available.
type TokenSource interface {
	Token() string
}

// Response is the uniform envelope every backend call resolves to.
type Response struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message,omitempty"`
}

// pagedEnvelope is the raw shape of a paginated listing response.
type pagedEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta model.PageMeta  `json:"meta"`
}

// Page is one decoded page of a paginated listing.
type Page struct {
	Data json.RawMessage
	Meta model.PageMeta
}

// Client talks to the remote storefront backend. All transport failures,
// non-2xx statuses and malformed bodies are normalized into *Error.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewClient creates a backend API client. The timeout applies to every
// request; a timeout surfaces as a normalized error like any other
// rejection. tokens and m may be nil.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, m *metrics.Metrics, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		metrics:    m,
		logger:     logger.With().Str("component", "api-client").Logger(),
	}
}

// Get performs a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// GetPage performs a GET request against a paginated listing endpoint and
// decodes the {data, meta} shape.
func (c *Client) GetPage(ctx context.Context, path string, params url.Values) (*Page, error) {
	resp, err := c.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var envelope pagedEnvelope
	if err := json.Unmarshal(resp.Data, &envelope); err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("malformed paginated response")
		return nil, newError(ErrCodeMalformed, resp.StatusCode, "malformed paginated response: %v", err)
	}

	return &Page{Data: envelope.Data, Meta: envelope.Meta}, nil
}

// do executes one request and normalizes the outcome.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body interface{}) (*Response, error) {
	start := time.Now()

	resp, err := c.roundTrip(ctx, method, path, params, body)

	if c.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		c.metrics.ObserveBackend(method+" "+path, outcome, time.Since(start).Seconds())
	}

	return resp, err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, params url.Values, body interface{}) (*Response, error) {
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, newError(ErrCodeMalformed, 0, "failed to encode request body: %v", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, newError(ErrCodeNetwork, 0, "failed to create request: %v", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		code := ErrCodeNetwork
		message := "Network error"
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			code = ErrCodeTimeout
			message = "Request timed out"
		}
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return nil, &Error{Message: message, Code: code}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, newError(ErrCodeNetwork, httpResp.StatusCode, "failed to read response: %v", err)
	}

	if httpResp.StatusCode >= 400 {
		return nil, c.statusError(method, path, httpResp.StatusCode, respBody)
	}

	resp := &Response{
		Success:    true,
		StatusCode: httpResp.StatusCode,
		Data:       respBody,
	}

	// Backends that wrap payloads in an envelope get unwrapped here so
	// callers always read Data as the payload itself.
	var envelope struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Success != nil {
		if !*envelope.Success {
			return nil, newError(ErrCodeBadStatus, httpResp.StatusCode, "%s", messageOrDefault(envelope.Message, "request rejected by backend"))
		}
		resp.Data = envelope.Data
		resp.Message = envelope.Message
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", httpResp.StatusCode).
		Msg("backend request completed")

	return resp, nil
}

// statusError converts a non-2xx response into a normalized error.
func (c *Client) statusError(method, path string, statusCode int, body []byte) *Error {
	var backendErr struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	json.Unmarshal(body, &backendErr) // best effort

	message := backendErr.Message
	if message == "" {
		message = backendErr.Error
	}

	c.logger.Warn().
		Str("method", method).
		Str("path", path).
		Int("status", statusCode).
		Msg("backend returned error status")

	if statusCode == http.StatusNotFound {
		return newError(ErrCodeNotFound, statusCode, "%s", messageOrDefault(message, "resource not found"))
	}

	return newError(ErrCodeBadStatus, statusCode, "%s", messageOrDefault(message, fmt.Sprintf("backend returned status %d", statusCode)))
}

func messageOrDefault(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
