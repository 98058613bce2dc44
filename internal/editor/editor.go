// Package editor implements in-place editing of resume sections.
//
// An editor is built from a section's content and a CommitFunc. The content
// is only used for reads. Every edit is a ContentEdit the CommitFunc runs
// against the section as it is at commit time, so changes committed since
// the editor was built (a merged AI reply, an edit to a sibling item) are
// kept. An edit is written in a single call and is never partially visible.
// Sessions wrap one editable text unit in a view/edit state machine.
package editor

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// ContentEdit computes a section's next content from its current content.
// It must not modify current.
type ContentEdit func(current types.Content) (types.Content, error)

// CommitFunc runs edit against one section's current content and writes the
// result. It returns the written content. When edit fails nothing is written.
type CommitFunc func(edit ContentEdit) (types.Content, error)

// SectionCommit returns a CommitFunc that edits the section in st. The edit
// runs inside st.Update, so it sees every earlier commit.
func SectionCommit(ctx context.Context, st *store.Store, sectionID string) CommitFunc {
	return func(edit ContentEdit) (types.Content, error) {
		var written types.Content
		_, err := st.Update(ctx, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
			s, ok := doc.Section(sectionID)
			if !ok {
				return doc, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
			}
			next, err := edit(s.Content)
			if err != nil {
				return doc, err
			}
			if s.Type() != next.Type() {
				return doc, &TypeMismatchError{SectionID: sectionID, Type: s.Type(), Editor: string(next.Type())}
			}
			written = next
			return store.ReplaceSectionContent(doc, sectionID, next), nil
		})
		if err != nil {
			return nil, err
		}
		return written.Clone(), nil
	}
}

// FieldSession returns a session for one top-level scalar field of st's document
func FieldSession(ctx context.Context, st *store.Store, field types.Field) (*Session, error) {
	value, ok := st.Current().Get(field)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return NewSession(value, func(v string) error {
		_, err := st.Update(ctx, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
			return store.ReplaceField(doc, field, v), nil
		})
		return err
	}), nil
}

// TitleSession returns a session for a section heading
func TitleSession(ctx context.Context, st *store.Store, sectionID string) (*Session, error) {
	s, ok := st.Current().Section(sectionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	return NewSession(s.Title, func(v string) error {
		_, err := st.Update(ctx, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
			if _, ok := doc.Section(sectionID); !ok {
				return doc, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
			}
			return store.ReplaceSectionTitle(doc, sectionID, v), nil
		})
		return err
	}), nil
}
