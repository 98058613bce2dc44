package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/rendering"
)

// handleExport renders the current document as pdf, html or tex and sends
// it as a download
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := rendering.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.domainError(w, &ErrValidation{Field: "format", Message: err.Error()})
		return
	}

	doc := s.store.Current()
	data, err := s.exporter.Export(r.Context(), doc, format)
	if err != nil {
		s.domainError(w, err)
		return
	}

	filename := rendering.ExportFilename(doc.Name, format)
	log.Printf("[export] %s (%d bytes)", filename, len(data))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[export] error writing response: %v", err)
	}
}
