package rendering

import (
	htmltemplate "html/template"

	"github.com/jonathan/resume-builder/internal/types"
)

func parseHTML(name string) (*htmltemplate.Template, error) {
	content, err := templateFS.ReadFile(name)
	if err != nil {
		return nil, &TemplateError{Format: "html", Message: "failed to read template " + name, Cause: err}
	}
	tmpl, err := htmltemplate.New("resume.html").Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Format: "html", Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}

// RenderHTML renders the document as a standalone letter-size HTML page
func RenderHTML(doc types.ResumeDocument) (string, error) {
	if err := parseTemplates(); err != nil {
		return "", err
	}
	return execute("html", htmlTmpl, doc)
}
