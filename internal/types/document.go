// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// Section is one titled, typed content block of a resume. The type tag is
// derived from Content so the two can never disagree.
type Section struct {
	ID      string
	Title   string
	Content Content
}

// NewSection builds a section whose type is taken from content
func NewSection(id, title string, content Content) Section {
	return Section{ID: id, Title: title, Content: content}
}

// Type returns the section's content variant tag
func (s Section) Type() SectionType {
	if s.Content == nil {
		return ""
	}
	return s.Content.Type()
}

// Clone returns a deep copy of the section
func (s Section) Clone() Section {
	if s.Content != nil {
		s.Content = s.Content.Clone()
	}
	return s
}

// sectionJSON is the wire shape of a Section
type sectionJSON struct {
	ID      string          `json:"id"`
	Type    SectionType     `json:"type"`
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON writes {id, type, title, content}
func (s Section) MarshalJSON() ([]byte, error) {
	if s.Content == nil {
		return nil, fmt.Errorf("section %q has no content", s.ID)
	}
	content, err := json.Marshal(s.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal section %q content: %w", s.ID, err)
	}
	return json.Marshal(sectionJSON{
		ID:      s.ID,
		Type:    s.Content.Type(),
		Title:   s.Title,
		Content: content,
	})
}

// UnmarshalJSON decodes content according to the declared type
func (s *Section) UnmarshalJSON(data []byte) error {
	var aux sectionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ID == "" {
		return fmt.Errorf("section id is required")
	}
	content, err := DecodeContent(aux.Type, aux.Content)
	if err != nil {
		return fmt.Errorf("section %q: %w", aux.ID, err)
	}
	*s = Section{ID: aux.ID, Title: aux.Title, Content: content}
	return nil
}

// Field names a top-level scalar field of ResumeDocument
type Field string

// Top-level scalar fields
const (
	FieldName                Field = "name"
	FieldTitle               Field = "title"
	FieldEmail               Field = "email"
	FieldPhone               Field = "phone"
	FieldLocation            Field = "location"
	FieldLinkedIn            Field = "linkedin"
	FieldGitHub              Field = "github"
	FieldProfessionalSummary Field = "professional_summary"
)

// Fields returns every top-level scalar field in header order
func Fields() []Field {
	return []Field{
		FieldName,
		FieldTitle,
		FieldEmail,
		FieldPhone,
		FieldLocation,
		FieldLinkedIn,
		FieldGitHub,
		FieldProfessionalSummary,
	}
}

// ResumeDocument is the root of one user's resume
type ResumeDocument struct {
	Name                string    `json:"name"`
	Title               string    `json:"title"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Location            string    `json:"location"`
	LinkedIn            string    `json:"linkedin"`
	GitHub              string    `json:"github"`
	ProfessionalSummary string    `json:"professional_summary"`
	Sections            []Section `json:"sections"`
}

// Clone returns a deep copy of the document
func (d ResumeDocument) Clone() ResumeDocument {
	if d.Sections != nil {
		sections := make([]Section, len(d.Sections))
		for i, s := range d.Sections {
			sections[i] = s.Clone()
		}
		d.Sections = sections
	}
	return d
}

// Get returns the value of a scalar field
func (d ResumeDocument) Get(f Field) (string, bool) {
	switch f {
	case FieldName:
		return d.Name, true
	case FieldTitle:
		return d.Title, true
	case FieldEmail:
		return d.Email, true
	case FieldPhone:
		return d.Phone, true
	case FieldLocation:
		return d.Location, true
	case FieldLinkedIn:
		return d.LinkedIn, true
	case FieldGitHub:
		return d.GitHub, true
	case FieldProfessionalSummary:
		return d.ProfessionalSummary, true
	}
	return "", false
}

// With returns a copy with one scalar field replaced. The second result is
// false for unknown fields.
func (d ResumeDocument) With(f Field, value string) (ResumeDocument, bool) {
	out := d.Clone()
	switch f {
	case FieldName:
		out.Name = value
	case FieldTitle:
		out.Title = value
	case FieldEmail:
		out.Email = value
	case FieldPhone:
		out.Phone = value
	case FieldLocation:
		out.Location = value
	case FieldLinkedIn:
		out.LinkedIn = value
	case FieldGitHub:
		out.GitHub = value
	case FieldProfessionalSummary:
		out.ProfessionalSummary = value
	default:
		return d, false
	}
	return out, true
}

// SectionIndex returns the position of the section with the given id
func (d ResumeDocument) SectionIndex(id string) (int, bool) {
	for i, s := range d.Sections {
		if s.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Section returns the section with the given id
func (d ResumeDocument) Section(id string) (Section, bool) {
	if i, ok := d.SectionIndex(id); ok {
		return d.Sections[i], true
	}
	return Section{}, false
}

// Validate checks the structural invariants: unique non-empty section ids
// and content present on every section.
func (d ResumeDocument) Validate() error {
	seen := make(map[string]bool, len(d.Sections))
	for i, s := range d.Sections {
		if s.ID == "" {
			return fmt.Errorf("section %d has an empty id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
		if s.Content == nil {
			return fmt.Errorf("section %q has no content", s.ID)
		}
	}
	return nil
}
