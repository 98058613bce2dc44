package reconcile

import (
	"slices"
	"sort"

	"github.com/jonathan/resume-builder/internal/types"
)

// OtherSkillsCategory receives skills sent as a flat list
const OtherSkillsCategory = "other"

// skillCategoryAliases maps AI category names, in lookup form, to the
// document's category keys.
var skillCategoryAliases = map[string]string{
	"programminglanguages":   types.SkillProgrammingLanguages,
	"languages":              types.SkillProgrammingLanguages,
	"frameworks":             types.SkillFrameworks,
	"frameworksandlibraries": types.SkillFrameworks,
	"frameworkslibraries":    types.SkillFrameworks,
	"libraries":              types.SkillFrameworks,
	"databasemanagement":     types.SkillDatabaseManagement,
	"databases":              types.SkillDatabaseManagement,
	"database":               types.SkillDatabaseManagement,
	"versioncontrol":         types.SkillVersionControl,
	"developertools":         types.SkillVersionControl,
	"tools":                  types.SkillVersionControl,
	"cloudplatforms":         types.SkillCloudPlatforms,
	"cloud":                  types.SkillCloudPlatforms,
}

// categoryKey resolves an AI category name. Unknown names match an
// existing ad hoc category by lookup form, or else pass through unchanged.
func categoryKey(existing types.SkillsContent, name string) string {
	lookup := NormalizeKey(name)
	if key, ok := skillCategoryAliases[lookup]; ok {
		return key
	}
	for _, cat := range existing {
		if NormalizeKey(cat.Key) == lookup {
			return cat.Key
		}
	}
	return name
}

// skillValues reads a category value: a list of strings or a comma-joined line
func skillValues(v any) []string {
	if s, ok := v.(string); ok {
		return types.SplitSkillLine(s)
	}
	return stringList(v)
}

// union appends the entries of add missing from have, in order. Comparison
// is case-sensitive.
func union(have, add []string) []string {
	out := slices.Clone(have)
	if out == nil {
		out = []string{}
	}
	for _, s := range add {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// mergeSkills unions each payload category into the matching document
// category. A flat list goes into OtherSkillsCategory.
func mergeSkills(existing types.SkillsContent, v any) (types.SkillsContent, bool) {
	incoming := map[string][]string{}
	switch val := v.(type) {
	case map[string]any:
		for name, items := range val {
			incoming[name] = skillValues(items)
		}
	case []any, string:
		incoming[OtherSkillsCategory] = skillValues(val)
	default:
		return existing, false
	}

	names := make([]string, 0, len(incoming))
	for name := range incoming {
		names = append(names, name)
	}
	sort.Strings(names)

	out := existing
	changed := false
	for _, name := range names {
		key := categoryKey(out, name)
		have, _ := out.Category(key)
		merged := union(have, incoming[name])
		if len(merged) == len(have) {
			continue
		}
		out = out.WithCategory(key, merged)
		changed = true
	}
	return out, changed
}
