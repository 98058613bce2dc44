package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionOf(t *testing.T, s *Server, id string) types.Section {
	t.Helper()
	sec, ok := s.store.Current().Section(id)
	require.True(t, ok, "section %s", id)
	return sec
}

func TestGetResume(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	w := do(t, s, http.MethodGet, "/resume", "")
	require.Equal(t, http.StatusOK, w.Code)

	doc := decode[types.ResumeDocument](t, w)
	assert.Equal(t, types.DefaultDocument(), doc)
}

func TestReplaceResume(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	doc := types.DefaultDocument()
	doc.Name = "Ada Lovelace"
	doc.Sections = doc.Sections[:2]
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	w := do(t, s, http.MethodPut, "/resume", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, doc, s.store.Current())

	for _, bad := range []string{`{"name": `, `{"name": "x", "sections": []}`} {
		w = do(t, s, http.MethodPut, "/resume", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
	assert.Equal(t, doc, s.store.Current(), "rejected bodies are not committed")
}

func TestResetResume(t *testing.T) {
	s := newTestServer(t, &fakeClient{})
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/resume/fields/name", `{"value": "Ada"}`).Code)

	w := do(t, s, http.MethodPost, "/resume/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Your Name", s.store.Current().Name)
}

func TestSetField(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		body       string
		wantStatus int
		wantName   string
	}{
		{"name", "name", `{"value": "Ada Lovelace"}`, http.StatusOK, "Ada Lovelace"},
		{"html draft is reduced to text", "name", `{"value": "<b>Ada</b> Lovelace", "html": true}`, http.StatusOK, "Ada Lovelace"},
		{"plain value keeps angle brackets", "name", `{"value": "Ada <Countess> Lovelace"}`, http.StatusOK, "Ada <Countess> Lovelace"},
		{"plain value keeps tags verbatim", "name", `{"value": "<b>Ada</b>"}`, http.StatusOK, "<b>Ada</b>"},
		{"empty value is allowed", "name", `{"value": ""}`, http.StatusOK, ""},
		{"missing value", "name", `{}`, http.StatusBadRequest, "Your Name"},
		{"unknown field", "colour", `{"value": "blue"}`, http.StatusBadRequest, "Your Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeClient{})
			w := do(t, s, http.MethodPut, "/resume/fields/"+tt.field, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantName, s.store.Current().Name)
		})
	}
}

func TestSetTitle(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	w := do(t, s, http.MethodPut, "/resume/sections/education/title", `{"value": "SCHOOLING"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SCHOOLING", sectionOf(t, s, "education").Title)

	w = do(t, s, http.MethodPut, "/resume/sections/hobbies/title", `{"value": "HOBBIES"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddSection(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	w := do(t, s, http.MethodPost, "/resume/sections", `{"type": "custom", "title": "VOLUNTEERING"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[AddSectionResponse](t, w)
	assert.Equal(t, "custom", resp.ID)
	last := resp.Document.Sections[len(resp.Document.Sections)-1]
	assert.Equal(t, "VOLUNTEERING", last.Title)
	assert.Equal(t, types.SectionCustom, last.Type())

	w = do(t, s, http.MethodPost, "/resume/sections", `{"type": "custom"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEqual(t, "custom", decode[AddSectionResponse](t, w).ID, "ids stay unique")

	for _, bad := range []string{`{"type": "hobbies"}`, `{}`} {
		assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/resume/sections", bad).Code, bad)
	}
}

func TestRemoveSection(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	w := do(t, s, http.MethodDelete, "/resume/sections/achievements", "")
	require.Equal(t, http.StatusOK, w.Code)
	_, ok := s.store.Current().Section("achievements")
	assert.False(t, ok)

	w = do(t, s, http.MethodDelete, "/resume/sections/achievements", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoveSection(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	w := do(t, s, http.MethodPost, "/resume/sections/experience/move", `{"direction": "up"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "experience", s.store.Current().Sections[0].ID)

	w = do(t, s, http.MethodPost, "/resume/sections/experience/move", `{"direction": "up"}`)
	require.Equal(t, http.StatusOK, w.Code, "moving the first section up is a no-op")
	assert.Equal(t, "experience", s.store.Current().Sections[0].ID)

	assert.Equal(t, http.StatusBadRequest,
		do(t, s, http.MethodPost, "/resume/sections/experience/move", `{"direction": "sideways"}`).Code)
	assert.Equal(t, http.StatusNotFound,
		do(t, s, http.MethodPost, "/resume/sections/hobbies/move", `{"direction": "down"}`).Code)
}

func TestItemEndpoints(t *testing.T) {
	s := newTestServer(t, &fakeClient{})
	experience := func() types.ExperienceContent {
		return sectionOf(t, s, "experience").Content.(types.ExperienceContent)
	}

	w := do(t, s, http.MethodPost, "/resume/sections/experience/items", "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, experience(), 2)

	w = do(t, s, http.MethodPut, "/resume/sections/experience/items/1/fields/company", `{"value": "Acme"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Acme", experience()[1].Company)

	w = do(t, s, http.MethodDelete, "/resume/sections/experience/items/0", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, experience(), 1)
	assert.Equal(t, "Acme", experience()[0].Company)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"index out of range", http.MethodDelete, "/resume/sections/experience/items/5", "", http.StatusNotFound},
		{"bad index", http.MethodDelete, "/resume/sections/experience/items/first", "", http.StatusBadRequest},
		{"negative index", http.MethodDelete, "/resume/sections/experience/items/-1", "", http.StatusBadRequest},
		{"unknown item field", http.MethodPut, "/resume/sections/experience/items/0/fields/salary", `{"value": "1"}`, http.StatusBadRequest},
		{"not a list section", http.MethodPost, "/resume/sections/skills/items", "", http.StatusConflict},
		{"missing section", http.MethodPost, "/resume/sections/hobbies/items", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, do(t, s, tt.method, tt.path, tt.body).Code)
		})
	}
}

func TestBulletEndpoints(t *testing.T) {
	s := newTestServer(t, &fakeClient{})
	bullets := func() []string {
		return sectionOf(t, s, "projects").Content.(types.ProjectsContent)[0].Description
	}

	w := do(t, s, http.MethodPost, "/resume/sections/projects/items/0/bullets", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"Bullet point 1", "Bullet point 2", types.NewBulletText}, bullets())

	w = do(t, s, http.MethodPut, "/resume/sections/projects/items/0/bullets/2", `{"value": "Cut p99 latency by 40%"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cut p99 latency by 40%", bullets()[2])

	w = do(t, s, http.MethodDelete, "/resume/sections/projects/items/0/bullets/0", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Bullet point 2", "Cut p99 latency by 40%"}, bullets())

	assert.Equal(t, http.StatusNotFound,
		do(t, s, http.MethodDelete, "/resume/sections/projects/items/0/bullets/9", "").Code)
	assert.Equal(t, http.StatusBadRequest,
		do(t, s, http.MethodPost, "/resume/sections/education/items/0/bullets", "").Code,
		"education items have no description points")
}

func TestSetSkillLine(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	w := do(t, s, http.MethodPut, "/resume/sections/skills/skills/programmingLanguages", `{"value": "Go,  Rust , "}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	items, ok := sectionOf(t, s, "skills").Content.(types.SkillsContent).Category(types.SkillProgrammingLanguages)
	require.True(t, ok)
	assert.Equal(t, []string{"Go", "Rust"}, items)

	assert.Equal(t, http.StatusBadRequest,
		do(t, s, http.MethodPut, "/resume/sections/skills/skills/cooking", `{"value": "pasta"}`).Code)
	assert.Equal(t, http.StatusConflict,
		do(t, s, http.MethodPut, "/resume/sections/education/skills/frameworks", `{"value": "React"}`).Code)
}

func TestSetText(t *testing.T) {
	s := newTestServer(t, &fakeClient{})
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/resume/sections", `{"type": "custom"}`).Code)

	w := do(t, s, http.MethodPut, "/resume/sections/custom/text", `{"value": "Weekend food bank shifts"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `"Weekend food bank shifts"`, string(sectionOf(t, s, "custom").Content.(types.CustomContent)))

	assert.Equal(t, http.StatusConflict,
		do(t, s, http.MethodPut, "/resume/sections/skills/text", `{"value": "x"}`).Code)
}

func TestBulletEndpoint_PlainAndHTMLValues(t *testing.T) {
	s := newTestServer(t, &fakeClient{})
	bullet := func() string {
		return sectionOf(t, s, "projects").Content.(types.ProjectsContent)[0].Description[0]
	}

	w := do(t, s, http.MethodPut, "/resume/sections/projects/items/0/bullets/0", `{"value": "Ported vector<int> loops to Go generics"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Ported vector<int> loops to Go generics", bullet())

	w = do(t, s, http.MethodPut, "/resume/sections/projects/items/0/bullets/0", `{"value": "Cut <i>p99</i> by 40%<br>", "html": true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Cut p99 by 40%", bullet())
}
