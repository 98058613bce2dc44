package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds one provider call
const DefaultTimeout = 30 * time.Second

// Client sends one system and user turn to a provider and returns the reply text
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	// Model returns the provider model name
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// Options tune client construction
type Options struct {
	// HTTPClient is used by chat-completion providers; defaults to one with DefaultTimeout
	HTTPClient *http.Client
	// BaseURL overrides the provider's API root
	BaseURL string
}

// NewClient creates the client for provider p
func NewClient(ctx context.Context, p ProviderInfo, apiKey string, opts Options) (Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	switch p.Kind {
	case KindGemini:
		return NewGeminiClient(ctx, p, apiKey, opts)
	case KindChatCompletion:
		return NewChatCompletionClient(p, apiKey, opts), nil
	default:
		return nil, fmt.Errorf("provider %s has unsupported kind %q", p.ID, p.Kind)
	}
}
