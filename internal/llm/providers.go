// Package llm provides the AI provider registry and provider clients.
// Mistral and Groq run on a server-side fallback key; OpenAI, Gemini and
// OpenRouter require the caller's own key.
package llm

import (
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Kind selects the wire protocol of a provider
type Kind string

const (
	// KindChatCompletion is the OpenAI-compatible /chat/completions API
	KindChatCompletion Kind = "chat-completion"
	// KindGemini is the Google Generative Language API
	KindGemini Kind = "gemini"
)

// Provider ids
const (
	ProviderMistral    = "mistral"
	ProviderGroq       = "groq"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// Temperature used for every provider call
const Temperature = 0.7

// ProviderInfo describes one AI provider
type ProviderInfo struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	HasFallback bool              `json:"hasFallback"`
	Model       string            `json:"model"`
	Kind        Kind              `json:"-"`
	BaseURL     string            `json:"-"`
	Headers     map[string]string `json:"-"`
}

// EnvKey returns the environment variable holding the fallback key
func (p ProviderInfo) EnvKey() string {
	return strings.ToUpper(p.ID) + "_API_KEY"
}

// Providers returns the registry in selector order
func Providers() []ProviderInfo {
	return []ProviderInfo{
		{
			ID:          ProviderMistral,
			Name:        "Mistral",
			HasFallback: true,
			Model:       "mistral-small-latest",
			Kind:        KindChatCompletion,
			BaseURL:     "https://api.mistral.ai/v1",
		},
		{
			ID:          ProviderGroq,
			Name:        "Groq",
			HasFallback: true,
			Model:       "llama-3.3-70b-versatile",
			Kind:        KindChatCompletion,
			BaseURL:     "https://api.groq.com/openai/v1",
		},
		{
			ID:      ProviderOpenAI,
			Name:    "OpenAI",
			Model:   "gpt-4o-mini",
			Kind:    KindChatCompletion,
			BaseURL: "https://api.openai.com/v1",
		},
		{
			ID:    ProviderGemini,
			Name:  "Google Gemini",
			Model: "gemini-1.5-flash",
			Kind:  KindGemini,
		},
		{
			ID:      ProviderOpenRouter,
			Name:    "OpenRouter",
			Model:   "meta-llama/llama-3.1-8b-instruct:free",
			Kind:    KindChatCompletion,
			BaseURL: "https://openrouter.ai/api/v1",
			Headers: map[string]string{
				"HTTP-Referer": "https://ai-resume-builder.app",
				"X-Title":      "AI Resume Builder",
			},
		},
	}
}

// Lookup finds a provider by id
func Lookup(id string) (ProviderInfo, bool) {
	for _, p := range Providers() {
		if p.ID == id {
			return p, true
		}
	}
	return ProviderInfo{}, false
}

// FallbackProviders returns the ids served by a server-side key
func FallbackProviders() []string {
	var ids []string
	for _, p := range Providers() {
		if p.HasFallback {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// UserKeyProviders returns the ids that need the caller's key
func UserKeyProviders() []string {
	var ids []string
	for _, p := range Providers() {
		if !p.HasFallback {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// RequiresUserKey reports whether id needs the caller's key. Unknown ids
// report false; they are rejected later by ResolveKey.
func RequiresUserKey(id string) bool {
	p, ok := Lookup(id)
	return ok && !p.HasFallback
}

// ResolveKey picks the credential for a call. A caller key is always
// preferred; fallback providers otherwise read their key from getenv.
func ResolveKey(id, userKey string, getenv func(string) string) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	p, ok := Lookup(id)
	if !ok {
		return "", &KeyError{Provider: id, Status: http.StatusBadRequest, Detail: fmt.Sprintf("Unknown provider: %s", id)}
	}

	userKey = strings.TrimSpace(userKey)
	if userKey != "" {
		return userKey, nil
	}
	if !p.HasFallback {
		return "", &KeyError{Provider: id, Status: http.StatusBadRequest, Detail: fmt.Sprintf("%s requires your own API key", id)}
	}

	key := getenv(p.EnvKey())
	if key == "" {
		return "", &KeyError{Provider: id, Status: http.StatusInternalServerError, Detail: fmt.Sprintf("Fallback key for %s not configured", id)}
	}
	return key, nil
}
