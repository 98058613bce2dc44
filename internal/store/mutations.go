package store

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// Direction is the move direction for ReorderSection
type Direction string

// Move directions
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection parses "up" or "down" (case-insensitive)
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Up:
		return Up, nil
	case Down:
		return Down, nil
	}
	return "", fmt.Errorf("invalid direction %q: must be up or down", s)
}

// The functions below never modify their input; each returns a new document.

// ReplaceField returns doc with one scalar field replaced. An unknown field
// is a programming error and panics.
func ReplaceField(doc types.ResumeDocument, field types.Field, value string) types.ResumeDocument {
	out, ok := doc.With(field, value)
	if !ok {
		panic(fmt.Sprintf("store: unknown field %q", field))
	}
	return out
}

// ReplaceSectionContent returns doc with the section's content replaced.
// Unknown ids leave doc unchanged, and so does content whose type differs
// from the section's.
func ReplaceSectionContent(doc types.ResumeDocument, sectionID string, content types.Content) types.ResumeDocument {
	i, ok := doc.SectionIndex(sectionID)
	if !ok || content == nil {
		return doc
	}
	if have := doc.Sections[i].Type(); have != content.Type() {
		log.Printf("[store] refusing %s content for section %q of type %s", content.Type(), sectionID, have)
		return doc
	}

	out := doc.Clone()
	out.Sections[i].Content = content.Clone()
	return out
}

// ReplaceSectionTitle returns doc with the section's heading replaced
func ReplaceSectionTitle(doc types.ResumeDocument, sectionID, title string) types.ResumeDocument {
	i, ok := doc.SectionIndex(sectionID)
	if !ok {
		return doc
	}
	out := doc.Clone()
	out.Sections[i].Title = title
	return out
}

// ReorderSection swaps the section with its neighbour in the given
// direction. Moving the first section up or the last down is a no-op.
func ReorderSection(doc types.ResumeDocument, sectionID string, dir Direction) types.ResumeDocument {
	i, ok := doc.SectionIndex(sectionID)
	if !ok {
		return doc
	}

	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= len(doc.Sections) {
		return doc
	}

	out := doc.Clone()
	out.Sections[i], out.Sections[j] = out.Sections[j], out.Sections[i]
	return out
}

// RemoveSection returns doc without the named section
func RemoveSection(doc types.ResumeDocument, sectionID string) types.ResumeDocument {
	i, ok := doc.SectionIndex(sectionID)
	if !ok {
		return doc
	}
	out := doc.Clone()
	out.Sections = append(out.Sections[:i:i], out.Sections[i+1:]...)
	return out
}

// AddSection appends a section of type t seeded with its template content.
// The id is the type name when free, otherwise the type name with a random suffix.
func AddSection(doc types.ResumeDocument, t types.SectionType, title string) (types.ResumeDocument, string, error) {
	content := types.TemplateContent(t)
	if content == nil {
		return doc, "", fmt.Errorf("unknown section type %q", t)
	}

	id := string(t)
	if _, taken := doc.SectionIndex(id); taken {
		id = fmt.Sprintf("%s-%s", t, uuid.NewString()[:8])
	}
	if title == "" {
		title = strings.ToUpper(string(t))
	}

	out := doc.Clone()
	out.Sections = append(out.Sections, types.NewSection(id, title, content))
	return out, id, nil
}
