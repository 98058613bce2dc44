// Package builder drives one resume-building session: a prompt goes to the
// AI backend, the reply is reconciled into the document store, and the
// conversation log records what happened.
package builder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jonathan/resume-builder/internal/conversation"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/reconcile"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// Asker sends a prompt to the AI backend
type Asker interface {
	Ask(ctx context.Context, provider string, req types.AskAIRequest) (types.AskAIResponse, error)
}

// OutcomeKind says how a reply was handled
type OutcomeKind string

const (
	// OutcomeMerged means the reply was merged into the document
	OutcomeMerged OutcomeKind = "merged"
	// OutcomeReply means the reply was shown verbatim; the document is untouched
	OutcomeReply OutcomeKind = "reply"
	// OutcomeError means the request failed; the document is untouched
	OutcomeError OutcomeKind = "error"
)

// Outcome is the result of one Send
type Outcome struct {
	Kind     OutcomeKind          `json:"kind"`
	Message  conversation.Message `json:"message"`
	Document types.ResumeDocument `json:"document"`
	// Err is the request failure for OutcomeError
	Err error `json:"-"`
}

// Session owns the settings and the single in-flight request of one user
type Session struct {
	store *store.Store
	log   *conversation.Log
	asker Asker

	mu       sync.RWMutex
	provider string
	apiKey   string

	pending atomic.Bool
}

// NewSession creates a session over st using provider by default
func NewSession(st *store.Store, asker Asker, provider string) *Session {
	return &Session{
		store:    st,
		log:      conversation.New(),
		asker:    asker,
		provider: provider,
	}
}

// Store returns the document store
func (s *Session) Store() *store.Store { return s.store }

// Log returns the conversation log
func (s *Session) Log() *conversation.Log { return s.log }

// Pending reports whether a request is in flight
func (s *Session) Pending() bool { return s.pending.Load() }

// Provider returns the selected provider id
func (s *Session) Provider() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// SetProvider selects the provider for subsequent requests
func (s *Session) SetProvider(id string) error {
	if _, ok := llm.Lookup(id); !ok {
		return fmt.Errorf("unknown provider %q", id)
	}
	s.mu.Lock()
	s.provider = id
	s.mu.Unlock()
	return nil
}

// SetAPIKey sets the caller's key sent with each request
func (s *Session) SetAPIKey(key string) {
	s.mu.Lock()
	s.apiKey = strings.TrimSpace(key)
	s.mu.Unlock()
}

// HasAPIKey reports whether a caller key is set
func (s *Session) HasAPIKey() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey != ""
}

// Send runs one exchange. Guard failures (empty input, missing key, request
// pending) return an error and leave the log untouched. Every other failure
// is reported through the Outcome and the log; the returned error is nil.
func (s *Session) Send(ctx context.Context, input string) (Outcome, error) {
	if strings.TrimSpace(input) == "" {
		return Outcome{}, ErrEmptyInput
	}

	s.mu.RLock()
	provider, key := s.provider, s.apiKey
	s.mu.RUnlock()

	if llm.RequiresUserKey(provider) && key == "" {
		return Outcome{}, &KeyRequiredError{Provider: provider}
	}
	if !s.pending.CompareAndSwap(false, true) {
		return Outcome{}, ErrRequestPending
	}
	defer s.pending.Store(false)

	s.log.User(input)

	doc := s.store.Current()
	req := types.AskAIRequest{Prompt: input, CurrentResumeData: &doc}
	if key != "" {
		req.UserAPIKey = &key
	}

	resp, err := s.asker.Ask(ctx, provider, req)
	if err != nil {
		log.Printf("[builder] %s request failed: %v", provider, err)
		return s.fail(err), nil
	}

	merged, err := s.store.Update(ctx, func(current types.ResumeDocument) (types.ResumeDocument, error) {
		return reconcile.ReconcileText(current, resp.Response)
	})

	var parseErr *reconcile.ParseError
	switch {
	case err == nil:
		return Outcome{
			Kind:     OutcomeMerged,
			Message:  s.log.Assistant(conversation.MergedReply),
			Document: merged,
		}, nil
	case errors.As(err, &parseErr), errors.Is(err, reconcile.ErrNotResumeData):
		return Outcome{
			Kind:     OutcomeReply,
			Message:  s.log.Assistant(resp.Response),
			Document: merged,
		}, nil
	default:
		log.Printf("[builder] failed to apply reply: %v", err)
		return s.fail(err), nil
	}
}

func (s *Session) fail(err error) Outcome {
	return Outcome{
		Kind:     OutcomeError,
		Message:  s.log.Assistant(conversation.ErrorReply(err.Error())),
		Document: s.store.Current(),
		Err:      err,
	}
}
