package editor

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// SkillsEditor edits the categories of a skills section. Each category is
// edited as one comma-joined line.
type SkillsEditor struct {
	sectionID string
	content   types.SkillsContent
	commit    CommitFunc
}

// Skills returns the editor for a skills section
func Skills(section types.Section, commit CommitFunc) (*SkillsEditor, error) {
	c, ok := section.Content.(types.SkillsContent)
	if !ok {
		return nil, &TypeMismatchError{SectionID: section.ID, Type: section.Type(), Editor: string(types.SectionSkills)}
	}
	return &SkillsEditor{sectionID: section.ID, content: c, commit: commit}, nil
}

// Categories returns the category keys in display order
func (e *SkillsEditor) Categories() []string {
	keys := make([]string, len(e.content))
	for i, cat := range e.content {
		keys[i] = cat.Key
	}
	return keys
}

// Line returns a category's skills joined with commas
func (e *SkillsEditor) Line(key string) (string, error) {
	items, ok := e.content.Category(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	return types.JoinSkillLine(items), nil
}

// SetLine splits line on commas and replaces the category's skills. The
// other categories are taken from the section as it is at commit time.
func (e *SkillsEditor) SetLine(key, line string) error {
	written, err := e.commit(func(current types.Content) (types.Content, error) {
		c, ok := current.(types.SkillsContent)
		if !ok {
			return nil, &TypeMismatchError{SectionID: e.sectionID, Type: current.Type(), Editor: string(types.SectionSkills)}
		}
		if _, ok := c.Category(key); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
		return c.WithCategory(key, types.SplitSkillLine(line)), nil
	})
	if err != nil {
		return err
	}
	e.content, _ = written.(types.SkillsContent)
	return nil
}

// Content returns the skills as last committed
func (e *SkillsEditor) Content() types.Content { return e.content.Clone() }

// Session returns a session editing one category line
func (e *SkillsEditor) Session(key string) (*Session, error) {
	line, err := e.Line(key)
	if err != nil {
		return nil, err
	}
	return NewSession(line, func(v string) error {
		return e.SetLine(key, v)
	}), nil
}
