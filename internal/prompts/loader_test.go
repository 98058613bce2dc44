package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AssistantSystem(t *testing.T) {
	ClearCache()

	prompt, err := Get(ResumeFile, KeyAssistantSystem)
	require.NoError(t, err)
	assert.Contains(t, prompt, "professional resume writing assistant")
	assert.Contains(t, prompt, "positionsOfResponsibility")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(ResumeFile, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"substitutes", "Hello {{.Name}}, welcome to {{.Company}}!", map[string]string{"Name": "Alice", "Company": "Acme"}, "Hello Alice, welcome to Acme!"},
		{"no placeholders", "No placeholders here", map[string]string{"Key": "Value"}, "No placeholders here"},
		{"missing data keeps placeholder", "Hello {{.Name}}", map[string]string{}, "Hello {{.Name}}"},
		{"values are not re-expanded", "{{.A}}", map[string]string{"A": "{{.B}}", "B": "x"}, "{{.B}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestAssistantUser(t *testing.T) {
	with := AssistantUser("I write Go", `{"name":"Ada"}`)
	assert.Contains(t, with, `{"name":"Ada"}`)
	assert.Contains(t, with, "User description: I write Go")

	without := AssistantUser("I write Go", "")
	assert.Equal(t, "User description: I write Go", without)
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(ResumeFile)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyAssistantSystem, KeyAssistantUser, KeyAssistantUserNoResume}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	first, err := Get(ResumeFile, KeyAssistantUser)
	require.NoError(t, err)
	second, err := Get(ResumeFile, KeyAssistantUser)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
