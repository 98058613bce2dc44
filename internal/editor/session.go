package editor

import (
	"fmt"
	"strings"
)

// State is the edit state of one text unit
type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session is the edit state machine of one text unit:
// viewing -> editing -> (commit | cancel) -> viewing.
// The draft is buffered until Commit, which writes it through the commit
// function in a single call.
type Session struct {
	state  State
	value  string
	draft  string
	commit func(string) error
}

// NewSession starts in the viewing state showing value
func NewSession(value string, commit func(string) error) *Session {
	return &Session{value: value, commit: commit}
}

// State returns the current state
func (s *Session) State() State { return s.state }

// Value returns the committed value
func (s *Session) Value() string { return s.value }

// Draft returns the buffered draft while editing, otherwise the value
func (s *Session) Draft() string {
	if s.state == Editing {
		return s.draft
	}
	return s.value
}

// Begin enters the editing state with the committed value as the draft.
// Calling Begin while editing keeps the current draft.
func (s *Session) Begin() {
	if s.state == Editing {
		return
	}
	s.state = Editing
	s.draft = s.value
}

// SetDraft replaces the buffered draft
func (s *Session) SetDraft(draft string) error {
	if s.state != Editing {
		return ErrNotEditing
	}
	s.draft = draft
	return nil
}

// SetHTMLDraft replaces the buffered draft with the text content of html,
// the inner HTML of an editable element
func (s *Session) SetHTMLDraft(html string) error {
	return s.SetDraft(PlainText(html))
}

// Commit writes the draft with surrounding whitespace trimmed. An unchanged
// value returns to viewing without writing. When the write fails the session
// stays in editing with the draft intact.
func (s *Session) Commit() error {
	if s.state != Editing {
		return ErrNotEditing
	}

	value := strings.TrimSpace(s.draft)
	if value != s.value {
		if err := s.commit(value); err != nil {
			return err
		}
		s.value = value
	}

	s.state = Viewing
	s.draft = ""
	return nil
}

// Cancel discards the draft
func (s *Session) Cancel() error {
	if s.state != Editing {
		return ErrNotEditing
	}
	s.state = Viewing
	s.draft = ""
	return nil
}

// Apply runs a full begin, draft and commit cycle
func (s *Session) Apply(draft string) error {
	s.Begin()
	if err := s.SetDraft(draft); err != nil {
		return err
	}
	return s.Commit()
}

// ApplyHTML runs a full cycle with a draft given as inner HTML
func (s *Session) ApplyHTML(html string) error {
	s.Begin()
	if err := s.SetHTMLDraft(html); err != nil {
		return err
	}
	return s.Commit()
}
