package editor

import (
	"encoding/json"

	"github.com/jonathan/resume-builder/internal/types"
)

// TextEditor edits a free-text section: a summary block, or a custom
// section holding a JSON string. Custom content of any other JSON shape is
// shown as its raw JSON text and replaced by a string on commit.
type TextEditor struct {
	sectionID string
	value     string
	commit    CommitFunc
}

// Text returns the editor for a summary or custom section
func Text(section types.Section, commit CommitFunc) (*TextEditor, error) {
	switch c := section.Content.(type) {
	case types.SummaryContent:
		return &TextEditor{sectionID: section.ID, value: string(c), commit: commit}, nil
	case types.CustomContent:
		return &TextEditor{sectionID: section.ID, value: customText(c), commit: commit}, nil
	}
	return nil, &TypeMismatchError{SectionID: section.ID, Type: section.Type(), Editor: "text"}
}

func customText(c types.CustomContent) string {
	if c.Empty() {
		return ""
	}
	var s string
	if err := json.Unmarshal(c, &s); err == nil {
		return s
	}
	return string(c)
}

// Value returns the text as last committed
func (e *TextEditor) Value() string { return e.value }

// Set replaces the section's text
func (e *TextEditor) Set(value string) error {
	_, err := e.commit(func(current types.Content) (types.Content, error) {
		switch current.(type) {
		case types.SummaryContent:
			return types.SummaryContent(value), nil
		case types.CustomContent:
			raw, err := json.Marshal(value)
			if err != nil {
				return nil, err
			}
			return types.CustomContent(raw), nil
		}
		return nil, &TypeMismatchError{SectionID: e.sectionID, Type: current.Type(), Editor: "text"}
	})
	if err != nil {
		return err
	}
	e.value = value
	return nil
}

// Session returns a session editing the text
func (e *TextEditor) Session() *Session {
	return NewSession(e.value, e.Set)
}
