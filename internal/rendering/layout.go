// Package rendering lays out a resume document and renders it to LaTeX, HTML and PDF.
package rendering

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/jonathan/resume-builder/internal/types"
)

// SummaryHeading is the heading of the professional summary block
const SummaryHeading = "PROFESSIONAL SUMMARY"

// Layout is a resume laid out for rendering. Every string is raw text;
// renderers escape for their own output format.
type Layout struct {
	Name    string
	Title   string
	Contact []string
	Summary string
	Blocks  []Block
}

// Block is one section laid out by its type
type Block struct {
	ID    string
	Type  types.SectionType
	Title string
	// Entries are two-column header rows for dated items
	Entries []Entry
	// Bullets are used by achievements and bullet-shaped custom sections
	Bullets []string
	// Lines are the label rows of a skills section
	Lines []Line
	// Paragraph is used by summary and text custom sections
	Paragraph string
}

// Entry is one item with a left/right header row, a sub line and bullets
type Entry struct {
	Left    string
	Right   string
	Sub     string
	Bullets []string
}

// Line is one skills category row
type Line struct {
	Label string
	Text  string
}

// Empty reports whether the block has nothing to show under its title
func (b Block) Empty() bool {
	return len(b.Entries) == 0 && len(b.Bullets) == 0 && len(b.Lines) == 0 && b.Paragraph == ""
}

var skillLabels = map[string]string{
	types.SkillProgrammingLanguages: "Programming Languages",
	types.SkillFrameworks:           "Frameworks & Libraries",
	types.SkillDatabaseManagement:   "Database Management",
	types.SkillVersionControl:       "Developer Tools",
	types.SkillCloudPlatforms:       "Cloud Platforms",
}

// BuildLayout walks the document sections in order and lays each out by type.
func BuildLayout(doc types.ResumeDocument) Layout {
	l := Layout{
		Name:    strings.TrimSpace(doc.Name),
		Title:   strings.TrimSpace(doc.Title),
		Contact: joinNonEmpty(doc.Phone, doc.Email, doc.Location, doc.LinkedIn, doc.GitHub),
		Summary: strings.TrimSpace(doc.ProfessionalSummary),
		Blocks:  make([]Block, 0, len(doc.Sections)),
	}
	for _, s := range doc.Sections {
		l.Blocks = append(l.Blocks, layoutSection(s))
	}
	return l
}

func layoutSection(s types.Section) Block {
	b := Block{ID: s.ID, Type: s.Type(), Title: s.Title}

	switch c := s.Content.(type) {
	case types.EducationContent:
		for _, e := range c {
			b.Entries = append(b.Entries, Entry{Left: e.School, Right: e.Year, Sub: e.Degree})
		}
	case types.ExperienceContent:
		for _, e := range c {
			b.Entries = append(b.Entries, Entry{Left: e.Company, Right: e.Duration, Sub: e.Position, Bullets: nonEmpty(e.Description)})
		}
	case types.ProjectsContent:
		for _, p := range c {
			b.Entries = append(b.Entries, Entry{
				Left:    strings.Join(joinNonEmpty(p.Name, p.Tech), " | "),
				Sub:     strings.Join(joinNonEmpty(p.GithubLink, p.LiveLink), " | "),
				Bullets: nonEmpty(p.Description),
			})
		}
	case types.AchievementsContent:
		for _, a := range c {
			if line := strings.Join(joinNonEmpty(a.Description, a.Name), " - "); line != "" {
				b.Bullets = append(b.Bullets, line)
			}
		}
	case types.PositionsContent:
		for _, p := range c {
			b.Entries = append(b.Entries, Entry{Left: p.Position, Right: p.Duration, Sub: p.Organization, Bullets: nonEmpty(p.Description)})
		}
	case types.SkillsContent:
		for _, cat := range c {
			if len(cat.Items) == 0 {
				continue
			}
			b.Lines = append(b.Lines, Line{Label: SkillLabel(cat.Key), Text: types.JoinSkillLine(cat.Items)})
		}
	case types.SummaryContent:
		b.Paragraph = strings.TrimSpace(string(c))
	case types.CustomContent:
		b.Paragraph, b.Bullets = customLayout(c)
	default:
		panic(fmt.Sprintf("rendering: unhandled content type %T", s.Content))
	}
	return b
}

// customLayout shows a JSON string as a paragraph and a list of strings as
// bullets. Any other shape is shown as its JSON text.
func customLayout(c types.CustomContent) (string, []string) {
	if c.Empty() {
		return "", nil
	}
	var text string
	if err := json.Unmarshal(c, &text); err == nil {
		return strings.TrimSpace(text), nil
	}
	var list []string
	if err := json.Unmarshal(c, &list); err == nil {
		return "", nonEmpty(list)
	}
	return string(c), nil
}

// SkillLabel returns the display label of a skills category key. Unknown
// keys are humanized: "cloud_services" and "cloudServices" both become
// "Cloud Services".
func SkillLabel(key string) string {
	if label, ok := skillLabels[key]; ok {
		return label
	}
	return humanize(key)
}

func humanize(key string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	prev := rune(0)
	for _, r := range key {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()

	for i, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}

func joinNonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func nonEmpty(values []string) []string {
	return joinNonEmpty(values...)
}
