// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// EducationItem represents one school entry
type EducationItem struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Year   string `json:"year"`
}

// ExperienceItem represents one job entry with its bullet points
type ExperienceItem struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Duration    string   `json:"duration"`
	Description []string `json:"description"`
}

// ProjectItem represents one project entry with its bullet points
type ProjectItem struct {
	Name        string   `json:"name"`
	Tech        string   `json:"tech"`
	GithubLink  string   `json:"githubLink"`
	LiveLink    string   `json:"liveLink"`
	Description []string `json:"description"`
}

// AchievementItem represents one achievement
type AchievementItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PositionItem represents one position of responsibility with its bullet points
type PositionItem struct {
	Organization string   `json:"organization"`
	Position     string   `json:"position"`
	Duration     string   `json:"duration"`
	Description  []string `json:"description"`
}

// Get returns the named scalar field.
func (e EducationItem) Get(field string) (string, bool) {
	switch field {
	case "school":
		return e.School, true
	case "degree":
		return e.Degree, true
	case "year":
		return e.Year, true
	}
	return "", false
}

// With returns a copy with the named scalar field replaced.
func (e EducationItem) With(field, value string) (EducationItem, bool) {
	switch field {
	case "school":
		e.School = value
	case "degree":
		e.Degree = value
	case "year":
		e.Year = value
	default:
		return e, false
	}
	return e, true
}

// Get returns the named scalar field.
func (e ExperienceItem) Get(field string) (string, bool) {
	switch field {
	case "company":
		return e.Company, true
	case "position":
		return e.Position, true
	case "duration":
		return e.Duration, true
	}
	return "", false
}

// With returns a copy with the named scalar field replaced.
func (e ExperienceItem) With(field, value string) (ExperienceItem, bool) {
	switch field {
	case "company":
		e.Company = value
	case "position":
		e.Position = value
	case "duration":
		e.Duration = value
	default:
		return e, false
	}
	return e, true
}

// Bullets returns the description points.
func (e ExperienceItem) Bullets() []string { return e.Description }

// WithBullets returns a copy with the description points replaced.
func (e ExperienceItem) WithBullets(b []string) ExperienceItem {
	e.Description = b
	return e
}

// Get returns the named scalar field.
func (p ProjectItem) Get(field string) (string, bool) {
	switch field {
	case "name":
		return p.Name, true
	case "tech":
		return p.Tech, true
	case "githubLink":
		return p.GithubLink, true
	case "liveLink":
		return p.LiveLink, true
	}
	return "", false
}

// With returns a copy with the named scalar field replaced.
func (p ProjectItem) With(field, value string) (ProjectItem, bool) {
	switch field {
	case "name":
		p.Name = value
	case "tech":
		p.Tech = value
	case "githubLink":
		p.GithubLink = value
	case "liveLink":
		p.LiveLink = value
	default:
		return p, false
	}
	return p, true
}

// Bullets returns the description points.
func (p ProjectItem) Bullets() []string { return p.Description }

// WithBullets returns a copy with the description points replaced.
func (p ProjectItem) WithBullets(b []string) ProjectItem {
	p.Description = b
	return p
}

// Get returns the named scalar field.
func (a AchievementItem) Get(field string) (string, bool) {
	switch field {
	case "name":
		return a.Name, true
	case "description":
		return a.Description, true
	}
	return "", false
}

// With returns a copy with the named scalar field replaced.
func (a AchievementItem) With(field, value string) (AchievementItem, bool) {
	switch field {
	case "name":
		a.Name = value
	case "description":
		a.Description = value
	default:
		return a, false
	}
	return a, true
}

// Get returns the named scalar field.
func (p PositionItem) Get(field string) (string, bool) {
	switch field {
	case "organization":
		return p.Organization, true
	case "position":
		return p.Position, true
	case "duration":
		return p.Duration, true
	}
	return "", false
}

// With returns a copy with the named scalar field replaced.
func (p PositionItem) With(field, value string) (PositionItem, bool) {
	switch field {
	case "organization":
		p.Organization = value
	case "position":
		p.Position = value
	case "duration":
		p.Duration = value
	default:
		return p, false
	}
	return p, true
}

// Bullets returns the description points.
func (p PositionItem) Bullets() []string { return p.Description }

// WithBullets returns a copy with the description points replaced.
func (p PositionItem) WithBullets(b []string) PositionItem {
	p.Description = b
	return p
}

// cloneStrings copies a string slice, keeping nil as nil.
func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
