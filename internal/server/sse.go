package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/builder"
)

// Chat stream event names
const (
	EventStatus   = "status"
	EventOutcome  = "outcome"
	EventError    = "error"
	EventComplete = "complete"
)

// StageThinking is the status of a turn waiting on the AI provider. The
// status after the reply is the outcome kind.
const StageThinking = "thinking"

// StreamStatus is the payload of a status event
type StreamStatus struct {
	Stage    string `json:"status"`
	Provider string `json:"provider"`
	Detail   string `json:"detail,omitempty"`
}

// ChatStream writes the Server-Sent Events of one chat turn: a thinking
// status, then the outcome status and the outcome itself, then complete.
// A turn rejected before the AI call ends with a single error event.
type ChatStream struct {
	w        http.ResponseWriter
	flusher  http.Flusher
	provider string
}

// NewChatStream starts an event stream on w for a turn sent to provider
func NewChatStream(w http.ResponseWriter, provider string) (*ChatStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &ChatStream{w: w, flusher: flusher, provider: provider}, nil
}

func (c *ChatStream) write(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(c.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	c.flusher.Flush()
	return nil
}

// Thinking reports that the turn was sent to the provider
func (c *ChatStream) Thinking() error {
	return c.write(EventStatus, StreamStatus{Stage: StageThinking, Provider: c.provider})
}

// Outcome reports how the reply was handled, then the outcome itself
func (c *ChatStream) Outcome(out builder.Outcome) error {
	status := StreamStatus{Stage: string(out.Kind), Provider: c.provider}
	if out.Err != nil {
		status.Detail = out.Err.Error()
	}
	if err := c.write(EventStatus, status); err != nil {
		return err
	}
	return c.write(EventOutcome, newChatResponse(out))
}

// Fail ends the stream with an error event
func (c *ChatStream) Fail(err error) {
	c.write(EventError, map[string]string{"error": err.Error()}) //nolint:errcheck
}

// Complete ends the stream with the outcome kind
func (c *ChatStream) Complete(kind builder.OutcomeKind) {
	c.write(EventComplete, map[string]string{"kind": string(kind)}) //nolint:errcheck
}
