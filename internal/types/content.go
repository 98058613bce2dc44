// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SectionType is the tag of a section's content variant
type SectionType string

// Section types. The set is closed: every Content implementation maps to exactly one.
const (
	SectionEducation    SectionType = "education"
	SectionExperience   SectionType = "experience"
	SectionSkills       SectionType = "skills"
	SectionProjects     SectionType = "projects"
	SectionAchievements SectionType = "achievements"
	SectionPositions    SectionType = "positionsOfResponsibility"
	SectionCustom       SectionType = "custom"
	SectionSummary      SectionType = "professional_summary_block"
)

// SectionTypes returns every known section type
func SectionTypes() []SectionType {
	return []SectionType{
		SectionEducation,
		SectionExperience,
		SectionSkills,
		SectionProjects,
		SectionAchievements,
		SectionPositions,
		SectionCustom,
		SectionSummary,
	}
}

// Valid reports whether t is one of the known section types
func (t SectionType) Valid() bool {
	for _, known := range SectionTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Content is the variant payload of a Section. Implementations live in this
// package only; switches over Content must handle every variant below.
type Content interface {
	// Type returns the section type tag for this variant
	Type() SectionType
	// Clone returns a deep copy
	Clone() Content
	// Empty reports whether the content carries no data
	Empty() bool

	sealed()
}

// EducationContent is replaced wholesale on AI updates
type EducationContent []EducationItem

// ExperienceContent is append-merged on AI updates
type ExperienceContent []ExperienceItem

// ProjectsContent is append-merged on AI updates
type ProjectsContent []ProjectItem

// AchievementsContent is append-merged on AI updates
type AchievementsContent []AchievementItem

// PositionsContent is append-merged on AI updates
type PositionsContent []PositionItem

// SummaryContent is free text, replaced wholesale on AI updates
type SummaryContent string

// CustomContent is an opaque JSON value, replaced wholesale on AI updates
type CustomContent json.RawMessage

// SkillCategory is one named list of skills
type SkillCategory struct {
	Key   string
	Items []string
}

// SkillsContent is an ordered mapping of category key to skills. It is
// serialized as a JSON object whose key order matches the slice order.
type SkillsContent []SkillCategory

// Canonical skill category keys
const (
	SkillProgrammingLanguages = "programmingLanguages"
	SkillFrameworks           = "frameworks"
	SkillDatabaseManagement   = "databaseManagement"
	SkillVersionControl       = "versionControl"
	SkillCloudPlatforms       = "cloudPlatforms"
)

// SkillCategoryKeys returns the five canonical category keys in display order
func SkillCategoryKeys() []string {
	return []string{
		SkillProgrammingLanguages,
		SkillFrameworks,
		SkillDatabaseManagement,
		SkillVersionControl,
		SkillCloudPlatforms,
	}
}

func (EducationContent) Type() SectionType    { return SectionEducation }
func (ExperienceContent) Type() SectionType   { return SectionExperience }
func (ProjectsContent) Type() SectionType     { return SectionProjects }
func (AchievementsContent) Type() SectionType { return SectionAchievements }
func (PositionsContent) Type() SectionType    { return SectionPositions }
func (SkillsContent) Type() SectionType       { return SectionSkills }
func (SummaryContent) Type() SectionType      { return SectionSummary }
func (CustomContent) Type() SectionType       { return SectionCustom }

func (EducationContent) sealed()    {}
func (ExperienceContent) sealed()   {}
func (ProjectsContent) sealed()     {}
func (AchievementsContent) sealed() {}
func (PositionsContent) sealed()    {}
func (SkillsContent) sealed()       {}
func (SummaryContent) sealed()      {}
func (CustomContent) sealed()       {}

func (c EducationContent) Empty() bool    { return len(c) == 0 }
func (c ExperienceContent) Empty() bool   { return len(c) == 0 }
func (c ProjectsContent) Empty() bool     { return len(c) == 0 }
func (c AchievementsContent) Empty() bool { return len(c) == 0 }
func (c PositionsContent) Empty() bool    { return len(c) == 0 }
func (c SummaryContent) Empty() bool      { return c == "" }

// Empty reports whether no category holds a skill
func (c SkillsContent) Empty() bool {
	for _, cat := range c {
		if len(cat.Items) > 0 {
			return false
		}
	}
	return true
}

// Empty reports whether the raw value is absent, null, "", [] or {}
func (c CustomContent) Empty() bool {
	trimmed := bytes.TrimSpace(c)
	switch string(trimmed) {
	case "", "null", `""`, "[]", "{}":
		return true
	}
	return false
}

// Clone returns a deep copy
func (c EducationContent) Clone() Content {
	if c == nil {
		return EducationContent(nil)
	}
	out := make(EducationContent, len(c))
	copy(out, c)
	return out
}

// Clone returns a deep copy
func (c ExperienceContent) Clone() Content {
	if c == nil {
		return ExperienceContent(nil)
	}
	out := make(ExperienceContent, len(c))
	for i, item := range c {
		item.Description = cloneStrings(item.Description)
		out[i] = item
	}
	return out
}

// Clone returns a deep copy
func (c ProjectsContent) Clone() Content {
	if c == nil {
		return ProjectsContent(nil)
	}
	out := make(ProjectsContent, len(c))
	for i, item := range c {
		item.Description = cloneStrings(item.Description)
		out[i] = item
	}
	return out
}

// Clone returns a deep copy
func (c AchievementsContent) Clone() Content {
	if c == nil {
		return AchievementsContent(nil)
	}
	out := make(AchievementsContent, len(c))
	copy(out, c)
	return out
}

// Clone returns a deep copy
func (c PositionsContent) Clone() Content {
	if c == nil {
		return PositionsContent(nil)
	}
	out := make(PositionsContent, len(c))
	for i, item := range c {
		item.Description = cloneStrings(item.Description)
		out[i] = item
	}
	return out
}

// Clone returns a deep copy
func (c SkillsContent) Clone() Content {
	if c == nil {
		return SkillsContent(nil)
	}
	out := make(SkillsContent, len(c))
	for i, cat := range c {
		out[i] = SkillCategory{Key: cat.Key, Items: cloneStrings(cat.Items)}
	}
	return out
}

// Clone returns the same value; strings are immutable.
func (c SummaryContent) Clone() Content { return c }

// Clone returns a deep copy
func (c CustomContent) Clone() Content {
	if c == nil {
		return CustomContent(nil)
	}
	out := make(CustomContent, len(c))
	copy(out, c)
	return out
}

// Category returns the skills listed under key
func (c SkillsContent) Category(key string) ([]string, bool) {
	for _, cat := range c {
		if cat.Key == key {
			return cat.Items, true
		}
	}
	return nil, false
}

// WithCategory returns a copy with key's skills replaced. A new key is
// appended after the existing categories.
func (c SkillsContent) WithCategory(key string, items []string) SkillsContent {
	out := c.Clone().(SkillsContent)
	for i := range out {
		if out[i].Key == key {
			out[i].Items = cloneStrings(items)
			return out
		}
	}
	return append(out, SkillCategory{Key: key, Items: cloneStrings(items)})
}

// SplitSkillLine splits a comma-joined skills line into trimmed, non-empty entries
func SplitSkillLine(line string) []string {
	out := []string{}
	for _, part := range strings.Split(line, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// JoinSkillLine is the inverse of SplitSkillLine
func JoinSkillLine(items []string) string {
	return strings.Join(items, ", ")
}

// MarshalJSON writes the categories as an object, preserving order
func (c SkillsContent) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Key)
		if err != nil {
			return nil, err
		}
		items := cat.Items
		if items == nil {
			items = []string{}
		}
		value, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of string lists, preserving key order
func (c *SkillsContent) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*c = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("skills content must be an object")
	}

	out := SkillsContent{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("skills category key must be a string")
		}
		var items []string
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("skills category %q: %w", key, err)
		}
		if items == nil {
			items = []string{}
		}
		out = append(out, SkillCategory{Key: key, Items: items})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out
	return nil
}

// MarshalJSON writes the raw value, or null when unset
func (c CustomContent) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return json.RawMessage(c).MarshalJSON()
}

// UnmarshalJSON stores a compacted copy of the raw value
func (c *CustomContent) UnmarshalJSON(data []byte) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*c = CustomContent(buf.Bytes())
	return nil
}

// DecodeContent decodes raw JSON into the variant declared by t. The shape
// must match t exactly; a mismatch is an error rather than a coercion.
func DecodeContent(t SectionType, raw json.RawMessage) (Content, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("null")
	}

	var (
		content Content
		err     error
	)
	switch t {
	case SectionEducation:
		var c EducationContent
		err = json.Unmarshal(raw, &c)
		content = c
	case SectionExperience:
		var c ExperienceContent
		err = json.Unmarshal(raw, &c)
		content = c
	case SectionProjects:
		var c ProjectsContent
		err = json.Unmarshal(raw, &c)
		content = c
	case SectionAchievements:
		var c AchievementsContent
		err = json.Unmarshal(raw, &c)
		content = c
	case SectionPositions:
		var c PositionsContent
		err = json.Unmarshal(raw, &c)
		content = c
	case SectionSkills:
		var c SkillsContent
		err = json.Unmarshal(raw, &c)
		content = c
	case SectionSummary:
		var c SummaryContent
		err = json.Unmarshal(raw, &c)
		content = c
	case SectionCustom:
		var c CustomContent
		err = json.Unmarshal(raw, &c)
		content = c
	default:
		return nil, fmt.Errorf("unknown section type %q", t)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s content: %w", t, err)
	}
	return content, nil
}
