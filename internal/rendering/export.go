package rendering

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Format is an export format
type Format string

// Supported export formats
const (
	FormatPDF   Format = "pdf"
	FormatHTML  Format = "html"
	FormatLaTeX Format = "tex"
)

// Formats returns every export format
func Formats() []Format {
	return []Format{FormatPDF, FormatHTML, FormatLaTeX}
}

// ParseFormat accepts a format name or a common alias ("latex", "htm")
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "html", "htm":
		return FormatHTML, nil
	case "tex", "latex":
		return FormatLaTeX, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatLaTeX:
		return "application/x-tex"
	}
	return "application/octet-stream"
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExportFilename returns the download name for a document, with every run
// of whitespace in the name replaced by an underscore:
// "Ada Lovelace" -> "Ada_Lovelace_Resume.pdf".
func ExportFilename(name string, f Format) string {
	return whitespaceRun.ReplaceAllString(name, "_") + "_Resume." + string(f)
}

// Exporter renders a document in any supported format
type Exporter struct {
	PDF *PDFRenderer
}

// NewExporter creates an exporter with the default PDF renderer
func NewExporter() *Exporter {
	return &Exporter{PDF: NewPDFRenderer()}
}

// Export renders doc in format f
func (e *Exporter) Export(ctx context.Context, doc types.ResumeDocument, f Format) ([]byte, error) {
	switch f {
	case FormatPDF:
		pdf := e.PDF
		if pdf == nil {
			pdf = NewPDFRenderer()
		}
		return pdf.RenderPDF(ctx, doc)
	case FormatHTML:
		out, err := RenderHTML(doc)
		return []byte(out), err
	case FormatLaTeX:
		out, err := RenderLaTeX(doc)
		return []byte(out), err
	}
	return nil, &RenderError{Message: fmt.Sprintf("unsupported format %q", f)}
}
