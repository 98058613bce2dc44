package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
)

// RootResponse is the body of GET /
type RootResponse struct {
	Message   string        `json:"message"`
	Providers ProviderSplit `json:"providers"`
}

// ProviderSplit groups provider ids by credential source
type ProviderSplit struct {
	Fallback        []string `json:"fallback"`
	UserKeyRequired []string `json:"user_key_required"`
}

// handleRoot lists providers split by credential source
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, RootResponse{
		Message: "AI Resume Builder API",
		Providers: ProviderSplit{
			Fallback:        llm.FallbackProviders(),
			UserKeyRequired: llm.UserKeyProviders(),
		},
	})
}

// handleProviders returns the provider registry with display metadata
func (s *Server) handleProviders(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, llm.Providers())
}

// handleAskAI proxies one prompt to a provider. Errors use the {detail}
// body the backend client reads.
func (s *Server) handleAskAI(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")

	var req types.AskAIRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.detailResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp, err := s.ask(r.Context(), provider, req)
	if err != nil {
		status := HTTPStatus(err)
		log.Printf("[ask-ai] %s failed (%d): %v", provider, status, err)
		s.detailResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// ask resolves the credential, calls the provider and returns its reply
func (s *Server) ask(ctx context.Context, provider string, req types.AskAIRequest) (types.AskAIResponse, error) {
	key, err := llm.ResolveKey(provider, req.Key(), s.getenv)
	if err != nil {
		return types.AskAIResponse{}, err
	}
	p, _ := llm.Lookup(provider)

	client, err := s.newClient(ctx, p, key)
	if err != nil {
		return types.AskAIResponse{}, fmt.Errorf("Error calling %s: %w", provider, err)
	}
	defer client.Close() //nolint:errcheck

	var resumeJSON string
	if req.CurrentResumeData != nil {
		data, err := json.MarshalIndent(req.CurrentResumeData, "", "  ")
		if err != nil {
			return types.AskAIResponse{}, fmt.Errorf("failed to encode current resume: %w", err)
		}
		resumeJSON = string(data)
	}

	text, err := client.Complete(ctx,
		prompts.MustGet(prompts.ResumeFile, prompts.KeyAssistantSystem),
		prompts.AssistantUser(req.Prompt, resumeJSON))
	if err != nil {
		return types.AskAIResponse{}, err
	}

	log.Printf("[ask-ai] %s (%s) replied with %d chars", provider, client.Model(), len(text))
	return types.AskAIResponse{Response: text, Provider: provider}, nil
}

// detailResponse writes the {detail} error body of the proxy endpoints
func (s *Server) detailResponse(w http.ResponseWriter, status int, detail string) {
	s.jsonResponse(w, status, types.ErrorDetail{Detail: detail})
}

// proxyAsker answers chat prompts through the server's own provider proxy,
// without a loopback HTTP call
type proxyAsker struct {
	s *Server
}

func (a proxyAsker) Ask(ctx context.Context, provider string, req types.AskAIRequest) (types.AskAIResponse, error) {
	return a.s.ask(ctx, provider, req)
}
