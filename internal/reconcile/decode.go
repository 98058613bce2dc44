package reconcile

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// IsEmpty reports whether a decoded payload value is absent, an empty
// string, an empty list or an empty mapping.
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}

// text returns a scalar payload value as a string. Numbers keep their
// literal form; booleans, lists and objects are not text.
func text(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	}
	return "", false
}

// stringList reads a list of scalars, or one scalar, dropping empty entries.
// The result is never nil.
func stringList(v any) []string {
	out := []string{}
	if list, ok := v.([]any); ok {
		for _, e := range list {
			if s, ok := text(e); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s, ok := text(v); ok && s != "" {
		out = append(out, s)
	}
	return out
}

// elements returns the entries of a list value. A lone object is treated as
// a one-entry list.
func elements(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case map[string]any:
		return []any{val}
	}
	return nil
}

// record is a payload object with keys in lookup form
type record map[string]any

func newRecord(m map[string]any) record {
	r := make(record, len(m))
	for k, v := range m {
		r[NormalizeKey(k)] = v
	}
	return r
}

// str reads a text field. A list is joined with commas.
func (r record) str(key string) string {
	v := r[key]
	if s, ok := text(v); ok {
		return s
	}
	if _, ok := v.([]any); ok {
		return strings.Join(stringList(v), ", ")
	}
	return ""
}

func (r record) list(key string) []string {
	return stringList(r[key])
}

func records(v any) []record {
	var out []record
	for _, e := range elements(v) {
		if m, ok := e.(map[string]any); ok {
			out = append(out, newRecord(m))
		}
	}
	return out
}

func educationItems(v any) []types.EducationItem {
	var out []types.EducationItem
	for _, r := range records(v) {
		item := types.EducationItem{
			School: r.str("school"),
			Degree: r.str("degree"),
			Year:   r.str("year"),
		}
		if item != (types.EducationItem{}) {
			out = append(out, item)
		}
	}
	return out
}

func experienceItems(v any) []types.ExperienceItem {
	var out []types.ExperienceItem
	for _, r := range records(v) {
		item := types.ExperienceItem{
			Company:     r.str("company"),
			Position:    r.str("position"),
			Duration:    r.str("duration"),
			Description: r.list("description"),
		}
		if item.Company != "" || item.Position != "" || item.Duration != "" || len(item.Description) > 0 {
			out = append(out, item)
		}
	}
	return out
}

func projectItems(v any) []types.ProjectItem {
	var out []types.ProjectItem
	for _, r := range records(v) {
		item := types.ProjectItem{
			Name:        r.str("name"),
			Tech:        r.str("tech"),
			GithubLink:  r.str("githublink"),
			LiveLink:    r.str("livelink"),
			Description: r.list("description"),
		}
		if item.Name != "" || item.Tech != "" || item.GithubLink != "" || item.LiveLink != "" || len(item.Description) > 0 {
			out = append(out, item)
		}
	}
	return out
}

// achievementItems also accepts bare strings, taken as the achievement name
func achievementItems(v any) []types.AchievementItem {
	var out []types.AchievementItem
	for _, e := range elements(v) {
		var item types.AchievementItem
		switch val := e.(type) {
		case map[string]any:
			r := newRecord(val)
			item = types.AchievementItem{Name: r.str("name"), Description: r.str("description")}
		default:
			item.Name, _ = text(val)
		}
		if item != (types.AchievementItem{}) {
			out = append(out, item)
		}
	}
	return out
}

func positionItems(v any) []types.PositionItem {
	var out []types.PositionItem
	for _, r := range records(v) {
		item := types.PositionItem{
			Organization: r.str("organization"),
			Position:     r.str("position"),
			Duration:     r.str("duration"),
			Description:  r.list("description"),
		}
		if item.Organization != "" || item.Position != "" || item.Duration != "" || len(item.Description) > 0 {
			out = append(out, item)
		}
	}
	return out
}
