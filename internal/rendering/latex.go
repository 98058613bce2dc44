package rendering

import (
	"embed"
	htmltemplate "html/template"
	"io"
	"strings"
	"sync"
	"text/template"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*
var templateFS embed.FS

const (
	latexTemplate = "templates/resume.tex"
	htmlTemplate  = "templates/resume.html"
)

// templateData is the value passed to both resume templates
type templateData struct {
	Layout
	SummaryHeading string
}

// executor is satisfied by both text/template and html/template
type executor interface {
	Execute(w io.Writer, data any) error
}

var (
	parseOnce sync.Once
	latexTmpl *template.Template
	htmlTmpl  *htmltemplate.Template
	parseErr  error
)

// parseTemplates parses the embedded templates once. The LaTeX template
// uses << >> delimiters so braces stay plain LaTeX.
func parseTemplates() error {
	parseOnce.Do(func() {
		latexTmpl, parseErr = parseLaTeX(latexTemplate)
		if parseErr != nil {
			return
		}
		htmlTmpl, parseErr = parseHTML(htmlTemplate)
	})
	return parseErr
}

func parseLaTeX(name string) (*template.Template, error) {
	content, err := templateFS.ReadFile(name)
	if err != nil {
		return nil, &TemplateError{Format: "latex", Message: "failed to read template " + name, Cause: err}
	}
	tmpl, err := template.New("resume.tex").
		Delims("<<", ">>").
		Funcs(template.FuncMap{"escape": EscapeLaTeX}).
		Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Format: "latex", Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}

// RenderLaTeX renders the document as a LaTeX source file
func RenderLaTeX(doc types.ResumeDocument) (string, error) {
	if err := parseTemplates(); err != nil {
		return "", err
	}
	return execute("latex", latexTmpl, doc)
}

func execute(format string, tmpl executor, doc types.ResumeDocument) (string, error) {
	var result strings.Builder
	data := templateData{Layout: BuildLayout(doc), SummaryHeading: SummaryHeading}
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{Format: format, Message: "failed to execute template", Cause: err}
	}
	return result.String(), nil
}
