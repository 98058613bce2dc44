package reconcile

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-builder/internal/types"
)

// NormalizeKey reduces a key to its lookup form: lower case with
// underscores, hyphens, dots and whitespace removed. Payload keys and
// document keys are compared in this form.
func NormalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if r == '_' || r == '-' || r == '.' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

type targetKind int

const (
	targetNone targetKind = iota
	targetField
	targetSection
)

// target is what a payload key resolves to in the document
type target struct {
	kind      targetKind
	field     types.Field
	sectionID string
}

// fieldAliases are payload names accepted for scalar fields besides their own
var fieldAliases = map[string]types.Field{
	"summary": types.FieldProfessionalSummary,
}

type keyTable map[string]target

// newKeyTable indexes every scalar field and every section id in doc by
// lookup form. A removed section is not a target, so a payload naming only
// removed sections is not resume data. Scalar fields win over section ids.
func newKeyTable(doc types.ResumeDocument) keyTable {
	table := make(keyTable)
	for _, s := range doc.Sections {
		table[NormalizeKey(s.ID)] = target{kind: targetSection, sectionID: s.ID}
	}
	for alias, f := range fieldAliases {
		table[alias] = target{kind: targetField, field: f}
	}
	for _, f := range types.Fields() {
		table[NormalizeKey(string(f))] = target{kind: targetField, field: f}
	}
	return table
}

func (t keyTable) lookup(key string) target {
	return t[NormalizeKey(key)]
}
