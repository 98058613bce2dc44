package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a provider error body is kept
const maxErrorBody = 4 << 10

// ChatCompletionClient implements Client for OpenAI-compatible providers
type ChatCompletionClient struct {
	info    ProviderInfo
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewChatCompletionClient creates a client for an OpenAI-compatible provider
func NewChatCompletionClient(p ProviderInfo, apiKey string, opts Options) *ChatCompletionClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	baseURL := p.BaseURL
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	return &ChatCompletionClient{
		info:    p,
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete posts one chat completion and returns the first choice's content
func (c *ChatCompletionClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.info.Model,
		Messages:    messages,
		Temperature: Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.info.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", c.info.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &APIError{Provider: c.info.Name, Status: resp.StatusCode, Body: string(errBody)}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ResponseError{Provider: c.info.Name, Message: "failed to decode response", Cause: err}
	}
	if len(parsed.Choices) == 0 {
		return "", &ResponseError{Provider: c.info.Name, Message: "no choices in response"}
	}
	return parsed.Choices[0].Message.Content, nil
}

// Model returns the provider model name
func (c *ChatCompletionClient) Model() string {
	return c.info.Model
}

// Close is a no-op; the HTTP client is shared
func (c *ChatCompletionClient) Close() error {
	return nil
}
