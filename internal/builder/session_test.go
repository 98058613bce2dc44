package builder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/backend"
	"github.com/jonathan/resume-builder/internal/conversation"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAsker struct {
	mu       sync.Mutex
	calls    []types.AskAIRequest
	provider string
	reply    string
	err      error
	block    chan struct{}
}

func (f *fakeAsker) Ask(_ context.Context, provider string, req types.AskAIRequest) (types.AskAIResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.provider = provider
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return types.AskAIResponse{}, f.err
	}
	return types.AskAIResponse{Response: f.reply, Provider: provider}, nil
}

func newSession(t *testing.T, asker Asker, provider string) (*Session, *store.MemorySnapshot) {
	t.Helper()
	snap := store.NewMemorySnapshot()
	st := store.New(snap, store.DefaultKey)
	st.Load(context.Background())
	return NewSession(st, asker, provider), snap
}

func TestSend_MergesStructuredReply(t *testing.T) {
	asker := &fakeAsker{reply: "```json\n{\"name\": \"Ada Lovelace\", \"skills\": {\"programming_languages\": [\"Go\"]}}\n```"}
	s, snap := newSession(t, asker, llm.ProviderGroq)

	out, err := s.Send(context.Background(), "I'm Ada and I write Go")
	require.NoError(t, err)

	assert.Equal(t, OutcomeMerged, out.Kind)
	assert.Equal(t, conversation.MergedReply, out.Message.Content)
	assert.Equal(t, "Ada Lovelace", out.Document.Name)
	assert.Equal(t, "Ada Lovelace", s.Store().Current().Name)

	_, err = snap.ReadSnapshot(context.Background(), store.DefaultKey)
	assert.NoError(t, err, "merge must be persisted")

	msgs := s.Log().Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, conversation.RoleUser, msgs[1].Role)

	require.Len(t, asker.calls, 1)
	assert.Nil(t, asker.calls[0].UserAPIKey, "no key is sent when none is set")
	require.NotNil(t, asker.calls[0].CurrentResumeData)
	assert.Equal(t, "Your Name", asker.calls[0].CurrentResumeData.Name)
}

func TestSend_PlainReplyIsShownVerbatim(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"free text", "Could you tell me more about your role at Acme?"},
		{"json without resume keys", `{"tip": "quantify your impact"}`},
		{"broken json", `{"name": "Ada",`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, snap := newSession(t, &fakeAsker{reply: tt.reply}, llm.ProviderMistral)
			before := s.Store().Current()

			out, err := s.Send(context.Background(), "hello")
			require.NoError(t, err)
			assert.Equal(t, OutcomeReply, out.Kind)
			assert.Equal(t, tt.reply, out.Message.Content)
			assert.Equal(t, before, s.Store().Current())

			_, err = snap.ReadSnapshot(context.Background(), store.DefaultKey)
			assert.ErrorIs(t, err, store.ErrNoSnapshot)
		})
	}
}

func TestSend_BackendFailure(t *testing.T) {
	asker := &fakeAsker{err: &backend.RequestError{Status: 500, Detail: "Fallback key for groq not configured"}}
	s, _ := newSession(t, asker, llm.ProviderGroq)
	before := s.Store().Current()

	out, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, OutcomeError, out.Kind)
	assert.Equal(t,
		"Sorry, I encountered an error: Fallback key for groq not configured. Please try again or check your API key.",
		out.Message.Content)
	assert.Equal(t, before, s.Store().Current())

	var reqErr *backend.RequestError
	assert.ErrorAs(t, out.Err, &reqErr)
	assert.False(t, s.Pending())
}

func TestSend_RemovedSectionReplyIsShownVerbatim(t *testing.T) {
	reply := `{"projects": [{"name": "Compiler"}]}`
	s, _ := newSession(t, &fakeAsker{reply: reply}, llm.ProviderMistral)
	_, err := s.Store().Update(context.Background(), func(d types.ResumeDocument) (types.ResumeDocument, error) {
		return store.RemoveSection(d, "projects"), nil
	})
	require.NoError(t, err)
	before := s.Store().Current()

	out, err := s.Send(context.Background(), "add my compiler project")
	require.NoError(t, err)

	assert.Equal(t, OutcomeReply, out.Kind)
	assert.Equal(t, reply, out.Message.Content)
	assert.Equal(t, before, s.Store().Current())
}

type failingSnapshot struct {
	*store.MemorySnapshot
}

func (failingSnapshot) WriteSnapshot(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestSend_SaveFailureLeavesDocument(t *testing.T) {
	st := store.New(failingSnapshot{store.NewMemorySnapshot()}, store.DefaultKey)
	st.Load(context.Background())
	s := NewSession(st, &fakeAsker{reply: `{"name": "Ada"}`}, llm.ProviderMistral)

	out, err := s.Send(context.Background(), "I'm Ada")
	require.NoError(t, err)

	assert.Equal(t, OutcomeError, out.Kind)
	assert.Contains(t, out.Err.Error(), "disk full")
	assert.Contains(t, out.Message.Content, "disk full")
	assert.Equal(t, "Your Name", out.Document.Name)
	assert.Equal(t, "Your Name", s.Store().Current().Name)
}

func TestSend_RequiredKeyBlocksBeforeNetwork(t *testing.T) {
	for _, provider := range llm.UserKeyProviders() {
		t.Run(provider, func(t *testing.T) {
			asker := &fakeAsker{reply: "{}"}
			s, _ := newSession(t, asker, provider)
			s.SetAPIKey("   ")

			_, err := s.Send(context.Background(), "hello")
			var keyErr *KeyRequiredError
			require.ErrorAs(t, err, &keyErr)
			assert.Equal(t, provider+" requires your API key. Please add it in settings.", err.Error())
			assert.Empty(t, asker.calls)
			assert.Equal(t, 1, s.Log().Len())
		})
	}
}

func TestSend_KeyIsForwarded(t *testing.T) {
	asker := &fakeAsker{reply: "ok"}
	s, _ := newSession(t, asker, llm.ProviderOpenAI)
	s.SetAPIKey(" sk-123 ")
	assert.True(t, s.HasAPIKey())

	_, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)
	require.Len(t, asker.calls, 1)
	require.NotNil(t, asker.calls[0].UserAPIKey)
	assert.Equal(t, "sk-123", *asker.calls[0].UserAPIKey)
	assert.Equal(t, llm.ProviderOpenAI, asker.provider)
}

func TestSend_EmptyInput(t *testing.T) {
	asker := &fakeAsker{}
	s, _ := newSession(t, asker, llm.ProviderGroq)

	_, err := s.Send(context.Background(), "  \n ")
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Empty(t, asker.calls)
}

func TestSend_OneRequestInFlight(t *testing.T) {
	asker := &fakeAsker{reply: "ok", block: make(chan struct{})}
	s, _ := newSession(t, asker, llm.ProviderGroq)

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "first")
		done <- err
	}()

	require.Eventually(t, s.Pending, time.Second, time.Millisecond)
	_, err := s.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrRequestPending)

	close(asker.block)
	require.NoError(t, <-done)
	assert.False(t, s.Pending())
}

func TestSetProvider(t *testing.T) {
	s, _ := newSession(t, &fakeAsker{}, llm.ProviderGroq)
	require.NoError(t, s.SetProvider(llm.ProviderGemini))
	assert.Equal(t, llm.ProviderGemini, s.Provider())
	assert.Error(t, s.SetProvider("nope"))
	assert.Equal(t, llm.ProviderGemini, s.Provider())
}

func TestSend_UnwrapsTransportErrors(t *testing.T) {
	cause := errors.New("connection refused")
	s, _ := newSession(t, &fakeAsker{err: &backend.TransportError{Cause: cause}}, llm.ProviderGroq)

	out, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.ErrorIs(t, out.Err, cause)
}
