// Package backend is the client side of the AI backend contract:
// POST /ask-ai/{provider} with the prompt, the caller's key and the current
// resume, answered by {response} or, on failure, {detail}.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultBaseURL is used when no backend URL is configured
const DefaultBaseURL = "http://localhost:8000"

// DefaultTimeout bounds one request; expiry is reported as a transport error
const DefaultTimeout = 60 * time.Second

// Client calls the AI backend
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client; zero values select the defaults
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// ProvidersResponse is the body of GET /
type ProvidersResponse struct {
	Message   string `json:"message"`
	Providers struct {
		Fallback        []string `json:"fallback"`
		UserKeyRequired []string `json:"user_key_required"`
	} `json:"providers"`
}

// Ask sends one prompt to provider
func (c *Client) Ask(ctx context.Context, provider string, req types.AskAIRequest) (types.AskAIResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return types.AskAIResponse{}, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := c.BaseURL + "/ask-ai/" + url.PathEscape(provider)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return types.AskAIResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var out types.AskAIResponse
	if err := c.do(httpReq, &out); err != nil {
		return types.AskAIResponse{}, err
	}
	return out, nil
}

// Providers fetches the backend's provider split
func (c *Client) Providers(ctx context.Context) (ProvidersResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/", nil)
	if err != nil {
		return ProvidersResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	var out ProvidersResponse
	if err := c.do(httpReq, &out); err != nil {
		return ProvidersResponse{}, err
	}
	return out, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var detail types.ErrorDetail
		_ = json.Unmarshal(data, &detail)
		return &RequestError{Status: resp.StatusCode, Detail: detail.Detail}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}
