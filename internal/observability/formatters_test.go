package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/conversation"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDocument(types.DefaultDocument())
	output := buf.String()

	assert.Contains(t, output, "RESUME")
	assert.Contains(t, output, "Your Name")
	assert.Contains(t, output, "EDUCATION [education]")
	assert.Contains(t, output, "University Name (2020)")
	assert.Contains(t, output, "Company Name (2021 - Present) - 1 points")
	assert.Contains(t, output, "Programming Languages: JavaScript, Python")
	assert.Contains(t, output, "Description - Achievement 1")
}

func TestPrintDocument_EmptySectionAndOverflow(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	achievements := make(types.AchievementsContent, 7)
	for i := range achievements {
		achievements[i] = types.AchievementItem{Name: "Award"}
	}
	doc := types.ResumeDocument{Name: "Ada", Sections: []types.Section{
		types.NewSection("notes", "NOTES", types.CustomContent(nil)),
		types.NewSection("achievements", "ACHIEVEMENTS", achievements),
	}}

	p.PrintDocument(doc)
	output := buf.String()

	assert.Contains(t, output, "(empty)")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintConversation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	log := conversation.New()
	log.User("I am a\nGo developer")
	log.Assistant(conversation.MergedReply)

	p.PrintConversation(log.Messages())
	output := buf.String()

	assert.Contains(t, output, "CONVERSATION (3 messages)")
	assert.Contains(t, output, "You: I am a Go developer")
	assert.Contains(t, output, "AI:")
}

func TestPrintConversation_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintConversation(nil)
	assert.Empty(t, buf.String())
}

func TestPrintOutcome(t *testing.T) {
	tests := []struct {
		name    string
		outcome builder.Outcome
		want    []string
	}{
		{
			name:    "merged",
			outcome: builder.Outcome{Kind: builder.OutcomeMerged, Message: conversation.Message{Content: conversation.MergedReply}},
			want:    []string{"RESUME UPDATED"},
		},
		{
			name:    "reply",
			outcome: builder.Outcome{Kind: builder.OutcomeReply, Message: conversation.Message{Content: "Tell me more"}},
			want:    []string{"ASSISTANT REPLY", "Tell me more"},
		},
		{
			name: "error",
			outcome: builder.Outcome{
				Kind:    builder.OutcomeError,
				Message: conversation.Message{Content: conversation.ErrorReply("boom")},
				Err:     errors.New("boom"),
			},
			want: []string{"REQUEST FAILED", "Sorry, I encountered an error: boom."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintOutcome(tt.outcome)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestPrintProviders(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProviders(llm.Providers())
	output := buf.String()

	assert.Contains(t, output, "AI PROVIDERS")
	assert.Contains(t, output, "groq")
	assert.Contains(t, output, "fallback key")
	assert.Contains(t, output, "requires your key")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("T", strings.Repeat("é", 100))
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", wrap("one two three", 8))
	assert.Equal(t, "a\n\nb", wrap("a\n\nb", 10))
	assert.Equal(t, "", wrap("", 10))
}
