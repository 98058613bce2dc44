package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/conversation"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const structuredReply = "Here is your update:\n```json\n{\"name\": \"Ada Lovelace\", \"skills\": {\"programming_languages\": [\"Go\"]}}\n```"

func TestListMessages_StartsWithGreeting(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	w := do(t, s, http.MethodGet, "/chat", "")
	require.Equal(t, http.StatusOK, w.Code)

	msgs := decode[[]conversation.Message](t, w)
	require.Len(t, msgs, 1)
	assert.Equal(t, conversation.RoleAssistant, msgs[0].Role)
	assert.Equal(t, conversation.Greeting, msgs[0].Content)
}

func TestChat_MergesStructuredReply(t *testing.T) {
	client := &fakeClient{reply: structuredReply}
	s := newTestServer(t, client)

	w := do(t, s, http.MethodPost, "/chat", `{"message": "I'm Ada and I write Go"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[ChatResponse](t, w)
	assert.Equal(t, builder.OutcomeMerged, resp.Kind)
	assert.Equal(t, conversation.MergedReply, resp.Message.Content)
	assert.Equal(t, "Ada Lovelace", resp.Document.Name)
	assert.Equal(t, "Ada Lovelace", s.store.Current().Name)

	assert.Equal(t, llm.ProviderMistral, client.provider)
	assert.Equal(t, "fallback-key", client.key)
	assert.Contains(t, client.prompt, "Your Name", "the current resume is sent along")

	msgs := decode[[]conversation.Message](t, do(t, s, http.MethodGet, "/chat", ""))
	assert.Len(t, msgs, 3)
}

func TestChat_PlainReply(t *testing.T) {
	s := newTestServer(t, &fakeClient{reply: "What did you build at Acme?"})

	w := do(t, s, http.MethodPost, "/chat", `{"message": "hello"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ChatResponse](t, w)
	assert.Equal(t, builder.OutcomeReply, resp.Kind)
	assert.Equal(t, "What did you build at Acme?", resp.Message.Content)
	assert.Equal(t, "Your Name", s.store.Current().Name)
}

func TestChat_ProviderFailureIsPartOfTheConversation(t *testing.T) {
	client := &fakeClient{err: &llm.APIError{Provider: "Mistral", Status: http.StatusUnauthorized, Body: "bad key"}}
	s := newTestServer(t, client)

	w := do(t, s, http.MethodPost, "/chat", `{"message": "hello"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ChatResponse](t, w)
	assert.Equal(t, builder.OutcomeError, resp.Kind)
	assert.Equal(t, "Mistral API error: bad key", resp.Error)
	assert.Equal(t, conversation.ErrorReply("Mistral API error: bad key"), resp.Message.Content)
}

func TestChat_Guards(t *testing.T) {
	client := &fakeClient{reply: "ok"}
	s := newTestServer(t, client)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/chat", `{"message": ""}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/chat", `{"message": "   "}`).Code)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/settings", `{"provider": "openai"}`).Code)
	w := do(t, s, http.MethodPost, "/chat", `{"message": "hello"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "requires your API key")

	assert.Zero(t, client.calls, "guards never reach the provider")
	assert.Len(t, s.session.Log().Messages(), 1, "guards leave the log untouched")
}

func TestChatStream(t *testing.T) {
	s := newTestServer(t, &fakeClient{reply: structuredReply})

	w := do(t, s, http.MethodPost, "/chat/stream", `{"message": "I'm Ada"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, "event: status\ndata: {\"status\":\"thinking\",\"provider\":\"mistral\"}\n\n")
	assert.Contains(t, body, "event: status\ndata: {\"status\":\"merged\",\"provider\":\"mistral\"}\n\n")
	assert.Contains(t, body, "event: outcome\n")
	assert.Contains(t, body, `"Ada Lovelace"`)
	assert.Contains(t, body, "event: complete\ndata: {\"kind\":\"merged\"}\n\n")
	assert.Less(t, strings.Index(body, `"thinking"`), strings.Index(body, "event: outcome"))
}

func TestChatStream_ProviderFailureStatus(t *testing.T) {
	s := newTestServer(t, &fakeClient{err: &llm.APIError{Provider: "Mistral", Status: http.StatusServiceUnavailable, Body: "overloaded"}})

	w := do(t, s, http.MethodPost, "/chat/stream", `{"message": "I'm Ada"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `"status":"error","provider":"mistral","detail":`)
	assert.Contains(t, body, "overloaded")
	assert.Contains(t, body, "event: complete\ndata: {\"kind\":\"error\"}\n\n")
}

func TestChatStream_GuardFailure(t *testing.T) {
	s := newTestServer(t, &fakeClient{})
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/settings", `{"provider": "gemini"}`).Code)

	w := do(t, s, http.MethodPost, "/chat/stream", `{"message": "hi"}`)

	assert.Contains(t, w.Body.String(), "event: error\n")
	assert.NotContains(t, w.Body.String(), "event: complete")
}

func TestSettings(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	resp := decode[SettingsResponse](t, do(t, s, http.MethodGet, "/settings", ""))
	assert.Equal(t, SettingsResponse{Provider: llm.ProviderMistral}, resp)

	w := do(t, s, http.MethodPut, "/settings", `{"provider": "openai", "api_key": "  sk-test  "}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[SettingsResponse](t, w)
	assert.Equal(t, "openai", resp.Provider)
	assert.True(t, resp.RequiresUserKey)
	assert.True(t, resp.HasAPIKey)
	assert.NotContains(t, w.Body.String(), "sk-test", "the key is never echoed")

	w = do(t, s, http.MethodPut, "/settings", `{"api_key": ""}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[SettingsResponse](t, w).HasAPIKey)

	w = do(t, s, http.MethodPut, "/settings", `{"provider": "claude-ish"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "openai", s.session.Provider(), "a rejected provider is not selected")
}
