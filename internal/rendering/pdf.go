package rendering

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-builder/internal/types"
)

// Letter portrait, in inches
const (
	PaperWidth  = 8.5
	PaperHeight = 11.0
)

// DefaultPDFTimeout bounds one headless browser run
const DefaultPDFTimeout = 60 * time.Second

// PDFRenderer prints the HTML rendering of a document through headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type PDFRenderer struct {
	// ExecPath overrides the browser binary; empty uses chromedp's lookup
	ExecPath string
	Timeout  time.Duration
	Verbose  bool
}

// NewPDFRenderer creates a renderer, honouring CHROME_PATH when set
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{ExecPath: os.Getenv("CHROME_PATH"), Timeout: DefaultPDFTimeout}
}

// RenderPDF renders the document as a letter-size PDF
func (r *PDFRenderer) RenderPDF(ctx context.Context, doc types.ResumeDocument) ([]byte, error) {
	html, err := RenderHTML(doc)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return nil, &RenderError{Message: "failed to create temp dir", Cause: err}
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &RenderError{Message: "failed to write html", Cause: err}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	if r.Verbose {
		log.Printf("[pdf] printing %s", htmlPath)
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(PaperWidth).
				WithPaperHeight(PaperHeight).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "browser printing failed", Cause: err}
	}

	if r.Verbose {
		log.Printf("[pdf] rendered %d bytes", len(pdf))
	}
	return pdf, nil
}
