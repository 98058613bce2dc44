package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionIDs(doc types.ResumeDocument) []string {
	ids := make([]string, len(doc.Sections))
	for i, s := range doc.Sections {
		ids[i] = s.ID
	}
	return ids
}

func TestStore_LoadWithoutSnapshotUsesDefault(t *testing.T) {
	s := New(NewMemorySnapshot(), "")

	doc := s.Load(context.Background())
	assert.Equal(t, types.DefaultDocument(), doc)
}

func TestStore_LoadCorruptSnapshotFallsBack(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"name": "Ada", `},
		{"schema violation", `{"name": 42}`},
		{"content mismatch", `{"name":"","title":"","email":"","phone":"","location":"","linkedin":"","github":"","professional_summary":"","sections":[{"id":"s","type":"professional_summary_block","title":"S","content":{"a":1}}]}`},
		{"duplicate ids", `{"name":"","title":"","email":"","phone":"","location":"","linkedin":"","github":"","professional_summary":"","sections":[{"id":"e","type":"education","title":"E","content":[]},{"id":"e","type":"education","title":"E","content":[]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewMemorySnapshot()
			require.NoError(t, snap.WriteSnapshot(context.Background(), DefaultKey, []byte(tt.data)))

			s := New(snap, DefaultKey)
			doc := s.Load(context.Background())
			assert.Equal(t, types.DefaultDocument(), doc)
		})
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	snap := NewFileSnapshot(t.TempDir())
	s := New(snap, DefaultKey)
	s.Load(ctx)

	doc := s.Current()
	doc = ReplaceField(doc, types.FieldName, "Ada Lovelace")
	doc = ReplaceField(doc, types.FieldProfessionalSummary, "Analyst")
	doc = ReplaceSectionTitle(doc, "projects", "SELECTED PROJECTS")
	doc = ReorderSection(doc, "skills", Up)
	doc = RemoveSection(doc, "achievements")
	doc, _, err := AddSection(doc, types.SectionCustom, "Hobbies")
	require.NoError(t, err)
	doc = ReplaceSectionContent(doc, "skills", types.SkillsContent{
		{Key: types.SkillProgrammingLanguages, Items: []string{"Go"}},
		{Key: "testing", Items: []string{}},
	})
	require.NoError(t, s.Commit(ctx, doc))

	reloaded := New(snap, DefaultKey).Load(ctx)
	assert.Equal(t, doc, reloaded)
}

func TestStore_UpdateErrorDoesNotCommit(t *testing.T) {
	ctx := context.Background()
	snap := NewMemorySnapshot()
	s := New(snap, DefaultKey)

	_, err := s.Update(ctx, func(d types.ResumeDocument) (types.ResumeDocument, error) {
		return ReplaceField(d, types.FieldName, "ignored"), errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, "Your Name", s.Current().Name)

	_, err = snap.ReadSnapshot(ctx, DefaultKey)
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestStore_UpdatePersists(t *testing.T) {
	ctx := context.Background()
	snap := NewMemorySnapshot()
	s := New(snap, DefaultKey)

	updated, err := s.Update(ctx, func(d types.ResumeDocument) (types.ResumeDocument, error) {
		return ReplaceField(d, types.FieldEmail, "ada@example.com"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", updated.Email)

	data, err := snap.ReadSnapshot(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ada@example.com")
}

// failingSnapshot reads like a MemorySnapshot and fails every write
type failingSnapshot struct {
	*MemorySnapshot
	err error
}

func (f failingSnapshot) WriteSnapshot(context.Context, string, []byte) error {
	return f.err
}

func TestStore_FailedSaveKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	diskFull := errors.New("disk full")
	s := New(failingSnapshot{MemorySnapshot: NewMemorySnapshot(), err: diskFull}, DefaultKey)
	s.Load(ctx)

	err := s.Commit(ctx, ReplaceField(s.Current(), types.FieldName, "Ada"))
	require.ErrorIs(t, err, diskFull)
	assert.Equal(t, "Your Name", s.Current().Name)

	got, err := s.Update(ctx, func(d types.ResumeDocument) (types.ResumeDocument, error) {
		return ReplaceField(d, types.FieldEmail, "ada@example.com"), nil
	})
	require.ErrorIs(t, err, diskFull)
	assert.Equal(t, types.DefaultDocument(), got)
	assert.Equal(t, types.DefaultDocument(), s.Current())
}

func TestStore_CommitRejectsInvalidDocument(t *testing.T) {
	s := New(NewMemorySnapshot(), DefaultKey)
	doc := s.Current()
	doc.Sections = append(doc.Sections, doc.Sections[0])

	assert.Error(t, s.Commit(context.Background(), doc))
	assert.Len(t, s.Current().Sections, len(types.DefaultDocument().Sections))
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemorySnapshot(), DefaultKey)
	require.NoError(t, s.Commit(ctx, ReplaceField(s.Current(), types.FieldName, "Ada")))

	doc, err := s.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultDocument(), doc)
	assert.Equal(t, "Your Name", s.Current().Name)
}

func TestReplaceField_UnknownPanics(t *testing.T) {
	assert.Panics(t, func() {
		ReplaceField(types.DefaultDocument(), types.Field("nickname"), "x")
	})
}

func TestReplaceField_DoesNotMutateInput(t *testing.T) {
	doc := types.DefaultDocument()
	out := ReplaceField(doc, types.FieldTitle, "Engineer")

	assert.Equal(t, "Engineer", out.Title)
	assert.Equal(t, "Professional Title", doc.Title)
}

func TestReplaceSectionContent(t *testing.T) {
	doc := types.DefaultDocument()

	t.Run("unknown section is a no-op", func(t *testing.T) {
		out := ReplaceSectionContent(doc, "hobbies", types.EducationContent{})
		assert.Equal(t, doc, out)
	})

	t.Run("type mismatch is a no-op", func(t *testing.T) {
		out := ReplaceSectionContent(doc, "education", types.ProjectsContent{})
		assert.Equal(t, doc, out)
	})

	t.Run("matching type replaces", func(t *testing.T) {
		content := types.EducationContent{{School: "MIT", Degree: "BS", Year: "2019"}}
		out := ReplaceSectionContent(doc, "education", content)

		s, ok := out.Section("education")
		require.True(t, ok)
		assert.Equal(t, content, s.Content)

		orig, _ := doc.Section("education")
		assert.Equal(t, "University Name", orig.Content.(types.EducationContent)[0].School)
	})
}

func TestReorderSection(t *testing.T) {
	doc := types.DefaultDocument()
	ids := sectionIDs(doc)

	t.Run("first up is a no-op", func(t *testing.T) {
		assert.Equal(t, doc, ReorderSection(doc, ids[0], Up))
	})

	t.Run("last down is a no-op", func(t *testing.T) {
		assert.Equal(t, doc, ReorderSection(doc, ids[len(ids)-1], Down))
	})

	t.Run("interior up swaps with previous", func(t *testing.T) {
		out := ReorderSection(doc, ids[2], Up)
		want := append([]string{}, ids...)
		want[1], want[2] = want[2], want[1]
		assert.Equal(t, want, sectionIDs(out))

		moved, _ := out.Section(ids[2])
		orig, _ := doc.Section(ids[2])
		assert.Equal(t, orig, moved)
	})

	t.Run("interior down swaps with next", func(t *testing.T) {
		out := ReorderSection(doc, ids[2], Down)
		want := append([]string{}, ids...)
		want[2], want[3] = want[3], want[2]
		assert.Equal(t, want, sectionIDs(out))
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		assert.Equal(t, doc, ReorderSection(doc, "missing", Up))
	})
}

func TestRemoveSection(t *testing.T) {
	doc := types.DefaultDocument()

	out := RemoveSection(doc, "skills")
	assert.NotContains(t, sectionIDs(out), "skills")
	assert.Len(t, out.Sections, len(doc.Sections)-1)
	assert.Contains(t, sectionIDs(doc), "skills")

	assert.Equal(t, doc, RemoveSection(doc, "missing"))
}

func TestAddSection(t *testing.T) {
	doc := types.DefaultDocument()

	out, id, err := AddSection(doc, types.SectionCustom, "")
	require.NoError(t, err)
	assert.Equal(t, "custom", id)
	s, ok := out.Section(id)
	require.True(t, ok)
	assert.Equal(t, "CUSTOM", s.Title)
	assert.Equal(t, types.SectionCustom, s.Type())

	out, id2, err := AddSection(out, types.SectionCustom, "More")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id2, "custom-"))
	assert.NoError(t, out.Validate())

	_, _, err = AddSection(doc, types.SectionType("hobbies"), "")
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" UP ")
	require.NoError(t, err)
	assert.Equal(t, Up, d)

	d, err = ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, Down, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestFileSnapshot(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")
	snap := NewFileSnapshot(dir)

	_, err := snap.ReadSnapshot(ctx, "slot")
	assert.ErrorIs(t, err, ErrNoSnapshot)

	require.NoError(t, snap.WriteSnapshot(ctx, "slot", []byte(`{"a":1}`)))
	require.NoError(t, snap.WriteSnapshot(ctx, "slot", []byte(`{"a":2}`)))

	data, err := snap.ReadSnapshot(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}
