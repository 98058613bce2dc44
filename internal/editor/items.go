package editor

import (
	"fmt"
	"slices"

	"github.com/jonathan/resume-builder/internal/types"
)

// ItemEditor edits list-shaped section content
type ItemEditor interface {
	Len() int
	Field(i int, field string) (string, error)
	SetField(i int, field, value string) error
	Append() error
	Remove(i int) error

	Bullets(i int) ([]string, error)
	SetBullet(i, j int, value string) error
	AppendBullet(i int) error
	RemoveBullet(i, j int) error

	// Content returns the content as of the last commit
	Content() types.Content
}

// listItem is implemented by every list item type in types
type listItem[T any] interface {
	Get(field string) (string, bool)
	With(field, value string) (T, bool)
}

// bulleted is implemented by items carrying description points
type bulleted[T any] interface {
	Bullets() []string
	WithBullets([]string) T
}

// ListEditor edits a list of T. Indexes given to an edit are resolved
// against the list as it is at commit time. After a successful edit the
// written list becomes the editor's content.
type ListEditor[T listItem[T]] struct {
	sectionID string
	items     []T
	wrap      func([]T) types.Content
	unwrap    func(types.Content) ([]T, bool)
	template  func() T
	commit    CommitFunc
}

var (
	_ ItemEditor = (*ListEditor[types.EducationItem])(nil)
	_ ItemEditor = (*ListEditor[types.ExperienceItem])(nil)
	_ ItemEditor = (*ListEditor[types.ProjectItem])(nil)
	_ ItemEditor = (*ListEditor[types.AchievementItem])(nil)
	_ ItemEditor = (*ListEditor[types.PositionItem])(nil)
)

// Items returns the list editor for a list-shaped section
func Items(section types.Section, commit CommitFunc) (ItemEditor, error) {
	switch c := section.Content.(type) {
	case types.EducationContent:
		return newListEditor(section.ID, c, types.NewEducationItem, commit), nil
	case types.ExperienceContent:
		return newListEditor(section.ID, c, types.NewExperienceItem, commit), nil
	case types.ProjectsContent:
		return newListEditor(section.ID, c, types.NewProjectItem, commit), nil
	case types.AchievementsContent:
		return newListEditor(section.ID, c, types.NewAchievementItem, commit), nil
	case types.PositionsContent:
		return newListEditor(section.ID, c, types.NewPositionItem, commit), nil
	case types.SkillsContent, types.SummaryContent, types.CustomContent:
		return nil, &TypeMismatchError{SectionID: section.ID, Type: section.Type(), Editor: "list"}
	}
	return nil, fmt.Errorf("section %q has unsupported content %T", section.ID, section.Content)
}

// listContent is a list-shaped content type such as types.ExperienceContent
type listContent[T any] interface {
	~[]T
	types.Content
}

func newListEditor[C listContent[T], T listItem[T]](sectionID string, items C, template func() T, commit CommitFunc) *ListEditor[T] {
	return &ListEditor[T]{
		sectionID: sectionID,
		items:     []T(items),
		wrap: func(items []T) types.Content {
			return C(items)
		},
		unwrap: func(c types.Content) ([]T, bool) {
			items, ok := c.(C)
			return []T(items), ok
		},
		template: template,
		commit:   commit,
	}
}

// apply commits edit run on a copy of the current list
func (e *ListEditor[T]) apply(edit func(items []T) ([]T, error)) error {
	written, err := e.commit(func(current types.Content) (types.Content, error) {
		items, ok := e.unwrap(current)
		if !ok {
			return nil, &TypeMismatchError{SectionID: e.sectionID, Type: current.Type(), Editor: "list"}
		}
		next, err := edit(slices.Clone(items))
		if err != nil {
			return nil, err
		}
		return e.wrap(next), nil
	})
	if err != nil {
		return err
	}
	e.items, _ = e.unwrap(written)
	return nil
}

func checkIndex(what string, i, n int) error {
	if i < 0 || i >= n {
		return indexError(what, i, n)
	}
	return nil
}

// Len returns the number of items
func (e *ListEditor[T]) Len() int { return len(e.items) }

// Content returns the list as last committed
func (e *ListEditor[T]) Content() types.Content { return e.wrap(e.items).Clone() }

// Field reads one text field of item i
func (e *ListEditor[T]) Field(i int, field string) (string, error) {
	if err := checkIndex("item", i, len(e.items)); err != nil {
		return "", err
	}
	v, ok := e.items[i].Get(field)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return v, nil
}

// SetField replaces one text field of item i
func (e *ListEditor[T]) SetField(i int, field, value string) error {
	return e.apply(func(items []T) ([]T, error) {
		if err := checkIndex("item", i, len(items)); err != nil {
			return nil, err
		}
		updated, ok := items[i].With(field, value)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		items[i] = updated
		return items, nil
	})
}

// Append adds a copy of the type's template item at the end
func (e *ListEditor[T]) Append() error {
	return e.apply(func(items []T) ([]T, error) {
		return append(items, e.template()), nil
	})
}

// Remove deletes item i
func (e *ListEditor[T]) Remove(i int) error {
	return e.apply(func(items []T) ([]T, error) {
		if err := checkIndex("item", i, len(items)); err != nil {
			return nil, err
		}
		return slices.Delete(items, i, i+1), nil
	})
}

func bulletsOf[T any](items []T, i int) (bulleted[T], error) {
	if err := checkIndex("item", i, len(items)); err != nil {
		return nil, err
	}
	b, ok := any(items[i]).(bulleted[T])
	if !ok {
		return nil, ErrNoBullets
	}
	return b, nil
}

// Bullets returns a copy of item i's description points
func (e *ListEditor[T]) Bullets(i int) ([]string, error) {
	b, err := bulletsOf(e.items, i)
	if err != nil {
		return nil, err
	}
	return slices.Clone(b.Bullets()), nil
}

// editBullets commits item i with its description points replaced by fn's result
func (e *ListEditor[T]) editBullets(i int, fn func([]string) ([]string, error)) error {
	return e.apply(func(items []T) ([]T, error) {
		b, err := bulletsOf(items, i)
		if err != nil {
			return nil, err
		}
		points, err := fn(slices.Clone(b.Bullets()))
		if err != nil {
			return nil, err
		}
		if points == nil {
			points = []string{}
		}
		items[i] = b.WithBullets(points)
		return items, nil
	})
}

// SetBullet replaces description point j of item i
func (e *ListEditor[T]) SetBullet(i, j int, value string) error {
	return e.editBullets(i, func(points []string) ([]string, error) {
		if err := checkIndex("bullet", j, len(points)); err != nil {
			return nil, err
		}
		points[j] = value
		return points, nil
	})
}

// AppendBullet adds a placeholder description point to item i
func (e *ListEditor[T]) AppendBullet(i int) error {
	return e.editBullets(i, func(points []string) ([]string, error) {
		return append(points, types.NewBulletText), nil
	})
}

// RemoveBullet deletes description point j of item i
func (e *ListEditor[T]) RemoveBullet(i, j int) error {
	return e.editBullets(i, func(points []string) ([]string, error) {
		if err := checkIndex("bullet", j, len(points)); err != nil {
			return nil, err
		}
		return slices.Delete(points, j, j+1), nil
	})
}

// ItemFieldSession returns a session editing one field of item i
func ItemFieldSession(ed ItemEditor, i int, field string) (*Session, error) {
	value, err := ed.Field(i, field)
	if err != nil {
		return nil, err
	}
	return NewSession(value, func(v string) error {
		return ed.SetField(i, field, v)
	}), nil
}

// BulletSession returns a session editing description point j of item i
func BulletSession(ed ItemEditor, i, j int) (*Session, error) {
	points, err := ed.Bullets(i)
	if err != nil {
		return nil, err
	}
	if err := checkIndex("bullet", j, len(points)); err != nil {
		return nil, err
	}
	return NewSession(points[j], func(v string) error {
		return ed.SetBullet(i, j, v)
	}), nil
}
