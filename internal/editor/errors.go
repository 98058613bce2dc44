package editor

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

var (
	// ErrIndexOutOfRange is returned for an item or bullet index past the list
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnknownField is returned for a field name the item does not have
	ErrUnknownField = errors.New("unknown field")
	// ErrNoBullets is returned for bullet edits on items without description points
	ErrNoBullets = errors.New("item has no description points")
	// ErrNotEditing is returned when a session transition requires the editing state
	ErrNotEditing = errors.New("not editing")
	// ErrSectionNotFound is returned when the edited section no longer exists
	ErrSectionNotFound = errors.New("section not found")
)

// TypeMismatchError is returned when an editor is requested for a section
// whose content it cannot edit, or when a commit would change a section's type.
type TypeMismatchError struct {
	SectionID string
	Type      types.SectionType
	Editor    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("section %q of type %s cannot be edited as %s", e.SectionID, e.Type, e.Editor)
}

func indexError(what string, i, n int) error {
	return fmt.Errorf("%w: %s %d (have %d)", ErrIndexOutOfRange, what, i, n)
}
