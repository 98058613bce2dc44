// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// AskAIRequest is the body of POST /ask-ai/{provider}
type AskAIRequest struct {
	Prompt            string          `json:"prompt" validate:"required"`
	UserAPIKey        *string         `json:"user_api_key"`
	CurrentResumeData *ResumeDocument `json:"current_resume_data,omitempty"`
}

// AskAIResponse is the success body of POST /ask-ai/{provider}
type AskAIResponse struct {
	Response string `json:"response"`
	Provider string `json:"provider,omitempty"`
}

// ErrorDetail is the body of a non-2xx response from the AI backend
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// Key returns the caller-supplied key, or "" when none was sent
func (r AskAIRequest) Key() string {
	if r.UserAPIKey == nil {
		return ""
	}
	return *r.UserAPIKey
}
