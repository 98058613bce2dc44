// Package reconcile folds loosely-typed AI payloads into a resume document.
//
// Each top-level payload key is normalized, resolved to a scalar field or a
// section id, and merged with the policy of that section's content type:
// education, summary and custom sections are replaced, list sections are
// append-merged with structural de-duplication, and skills are unioned per
// category. Empty values never overwrite anything.
package reconcile

import (
	"encoding/json"
	"fmt"
	"log"
	"reflect"
	"slices"
	"sort"

	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// Reconcile returns doc with payload merged in. It returns ErrNotResumeData,
// and doc unchanged, when no payload key names a known field or section.
func Reconcile(doc types.ResumeDocument, payload map[string]any) (types.ResumeDocument, error) {
	table := newKeyTable(doc)

	keys := make([]string, 0, len(payload))
	recognized := 0
	for key := range payload {
		keys = append(keys, key)
		if table.lookup(key).kind != targetNone {
			recognized++
		}
	}
	if recognized == 0 {
		return doc, ErrNotResumeData
	}
	sort.Strings(keys)

	var applied, skipped, ignored []string
	out := doc
	for _, key := range keys {
		value := payload[key]
		tgt := table.lookup(key)

		if tgt.kind == targetNone {
			ignored = append(ignored, key)
			continue
		}
		if IsEmpty(value) {
			skipped = append(skipped, key)
			continue
		}

		var ok bool
		switch tgt.kind {
		case targetField:
			out, ok = mergeField(out, tgt.field, value)
		case targetSection:
			out, ok = mergeSectionByID(out, tgt.sectionID, value)
		}
		if ok {
			applied = append(applied, key)
		} else {
			skipped = append(skipped, key)
		}
	}

	log.Printf("[reconcile] applied=%v skipped=%v ignored=%v", applied, skipped, ignored)
	return out, nil
}

// ReconcileText extracts the payload from a model reply and reconciles it.
// The error is a *ParseError when nothing parseable was found and
// ErrNotResumeData when the payload names no known key.
func ReconcileText(doc types.ResumeDocument, reply string) (types.ResumeDocument, error) {
	ex := Extract(reply)
	if ex.Kind != ExtractOK {
		return doc, ex.Err
	}
	return Reconcile(doc, ex.Payload)
}

func mergeField(doc types.ResumeDocument, field types.Field, value any) (types.ResumeDocument, bool) {
	s, ok := text(value)
	if !ok || s == "" {
		return doc, false
	}
	return store.ReplaceField(doc, field, s), true
}

func mergeSectionByID(doc types.ResumeDocument, id string, value any) (types.ResumeDocument, bool) {
	section, ok := doc.Section(id)
	if !ok {
		return doc, false
	}
	content, changed := mergeSection(section, value)
	if !changed {
		return doc, false
	}
	return store.ReplaceSectionContent(doc, id, content), true
}

// mergeSection applies the merge policy of the section's content type. The
// returned content always has the same type as the section's.
func mergeSection(s types.Section, value any) (types.Content, bool) {
	switch existing := s.Content.(type) {
	case types.EducationContent:
		items := educationItems(value)
		if len(items) == 0 {
			return existing, false
		}
		return types.EducationContent(items), true

	case types.ExperienceContent:
		merged, added := appendUnique(existing, experienceItems(value))
		return types.ExperienceContent(merged), added > 0

	case types.ProjectsContent:
		merged, added := appendUnique(existing, projectItems(value))
		return types.ProjectsContent(merged), added > 0

	case types.AchievementsContent:
		merged, added := appendUnique(existing, achievementItems(value))
		return types.AchievementsContent(merged), added > 0

	case types.PositionsContent:
		merged, added := appendUnique(existing, positionItems(value))
		return types.PositionsContent(merged), added > 0

	case types.SkillsContent:
		return mergeSkills(existing, value)

	case types.SummaryContent:
		str, ok := value.(string)
		if !ok || str == "" {
			return existing, false
		}
		return types.SummaryContent(str), true

	case types.CustomContent:
		raw, err := json.Marshal(value)
		if err != nil {
			log.Printf("[reconcile] dropping custom content for %q: %v", s.ID, err)
			return existing, false
		}
		return types.CustomContent(raw), true
	}

	panic(fmt.Sprintf("reconcile: unhandled content type %T", s.Content))
}

// appendUnique appends each incoming item that is not structurally equal to
// an item already present, including items appended earlier in the same call.
func appendUnique[T any](existing, incoming []T) ([]T, int) {
	out := slices.Clone(existing)
	added := 0
	for _, item := range incoming {
		if slices.ContainsFunc(out, func(have T) bool { return reflect.DeepEqual(have, item) }) {
			continue
		}
		out = append(out, item)
		added++
	}
	return out, added
}
