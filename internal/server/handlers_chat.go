package server

import (
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/conversation"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
)

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse reports how one exchange was handled
type ChatResponse struct {
	Kind     builder.OutcomeKind  `json:"kind"`
	Message  conversation.Message `json:"message"`
	Document types.ResumeDocument `json:"document"`
	Error    string               `json:"error,omitempty"`
}

// SettingsResponse is the body of GET /settings
type SettingsResponse struct {
	Provider        string `json:"provider"`
	RequiresUserKey bool   `json:"requires_user_key"`
	HasAPIKey       bool   `json:"has_api_key"`
	Pending         bool   `json:"pending"`
}

// SettingsRequest is the body of PUT /settings. Omitted fields are unchanged;
// an empty api_key clears the key.
type SettingsRequest struct {
	Provider *string `json:"provider,omitempty"`
	APIKey   *string `json:"api_key,omitempty"`
}

func newChatResponse(out builder.Outcome) ChatResponse {
	resp := ChatResponse{Kind: out.Kind, Message: out.Message, Document: out.Document}
	if out.Err != nil {
		resp.Error = out.Err.Error()
	}
	return resp
}

// handleListMessages returns the conversation log, oldest first
func (s *Server) handleListMessages(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.session.Log().Messages())
}

// handleChat runs one exchange and returns its outcome. A failed AI call is
// still a 200: the failure is part of the conversation.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.domainError(w, err)
		return
	}

	out, err := s.session.Send(r.Context(), req.Message)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newChatResponse(out))
}

// handleChatStream runs one exchange and reports progress via SSE
func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.domainError(w, err)
		return
	}

	stream, err := NewChatStream(w, s.session.Provider())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := stream.Thinking(); err != nil {
		log.Printf("[chat] error writing SSE event: %v", err)
		return
	}

	out, err := s.session.Send(r.Context(), req.Message)
	if err != nil {
		stream.Fail(err)
		return
	}

	if err := stream.Outcome(out); err != nil {
		log.Printf("[chat] error writing SSE event: %v", err)
		return
	}
	stream.Complete(out.Kind)
}

func (s *Server) settings() SettingsResponse {
	provider := s.session.Provider()
	return SettingsResponse{
		Provider:        provider,
		RequiresUserKey: llm.RequiresUserKey(provider),
		HasAPIKey:       s.session.HasAPIKey(),
		Pending:         s.session.Pending(),
	}
}

// handleGetSettings returns the chat session settings. The key itself is never returned.
func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.settings())
}

// handleUpdateSettings selects the provider and sets or clears the caller key
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.domainError(w, err)
		return
	}

	if req.Provider != nil {
		if err := s.session.SetProvider(*req.Provider); err != nil {
			s.domainError(w, &ErrValidation{Field: "provider", Message: err.Error()})
			return
		}
	}
	if req.APIKey != nil {
		s.session.SetAPIKey(*req.APIKey)
	}

	s.jsonResponse(w, http.StatusOK, s.settings())
}
