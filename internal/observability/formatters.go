// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/conversation"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// wrap breaks text into lines of at most width runes at word boundaries
func wrap(text string, width int) string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// PrintDocument outputs the header fields and a per-section summary of a resume.
func (p *Printer) PrintDocument(doc types.ResumeDocument) {
	layout := rendering.BuildLayout(doc)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Name))
	if doc.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", doc.Title))
	}
	if len(layout.Contact) > 0 {
		sb.WriteString(fmt.Sprintf("Contact:  %s\n", strings.Join(layout.Contact, " | ")))
	}
	if layout.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n", layout.Summary))
	}

	for _, b := range layout.Blocks {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s [%s]\n", b.Title, b.ID))

		var rows []string
		for _, e := range b.Entries {
			row := e.Left
			if e.Right != "" {
				row += " (" + e.Right + ")"
			}
			if len(e.Bullets) > 0 {
				row += fmt.Sprintf(" - %d points", len(e.Bullets))
			}
			rows = append(rows, row)
		}
		for _, l := range b.Lines {
			rows = append(rows, l.Label+": "+l.Text)
		}
		rows = append(rows, b.Bullets...)
		if b.Paragraph != "" {
			rows = append(rows, b.Paragraph)
		}

		if len(rows) == 0 {
			sb.WriteString("  (empty)\n")
			continue
		}
		count := min(len(rows), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", rows[i]))
		}
		if len(rows) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rows)-maxItemsToShow))
		}
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintConversation outputs the conversation log, oldest message first.
func (p *Printer) PrintConversation(messages []conversation.Message) {
	if len(messages) == 0 {
		return
	}

	var sb strings.Builder
	for i, m := range messages {
		label := "You"
		if m.Role == conversation.RoleAssistant {
			label = "AI"
		}
		sb.WriteString(fmt.Sprintf("%-4s %s", label+":", strings.ReplaceAll(m.Content, "\n", " ")))
		if i < len(messages)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("CONVERSATION (%d messages)", len(messages)), sb.String())
}

// PrintOutcome outputs how a reply was handled. Reply text is wrapped to the box width.
func (p *Printer) PrintOutcome(out builder.Outcome) {
	var title string
	switch out.Kind {
	case builder.OutcomeMerged:
		title = "✅ RESUME UPDATED"
	case builder.OutcomeReply:
		title = "💬 ASSISTANT REPLY"
	case builder.OutcomeError:
		title = "⚠ REQUEST FAILED"
	default:
		title = strings.ToUpper(string(out.Kind))
	}

	content := wrap(out.Message.Content, boxWidth-4)
	if out.Kind == builder.OutcomeError && out.Err != nil {
		content += "\n\n" + wrap(out.Err.Error(), boxWidth-4)
	}
	p.printBox(title, content)
}

// PrintProviders outputs the provider registry.
func (p *Printer) PrintProviders(providers []llm.ProviderInfo) {
	if len(providers) == 0 {
		return
	}

	var sb strings.Builder
	for i, info := range providers {
		key := "fallback key"
		if !info.HasFallback {
			key = "requires your key"
		}
		sb.WriteString(fmt.Sprintf("%-11s %s\n", info.ID, info.Name))
		sb.WriteString(fmt.Sprintf("            %s, %s", info.Model, key))
		if i < len(providers)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("AI PROVIDERS", sb.String())
}
