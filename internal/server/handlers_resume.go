package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// maxDocumentBytes bounds the body of PUT /resume
const maxDocumentBytes = 1 << 20

// ValueRequest carries the draft of one edited text unit. An empty string is
// a valid value; a missing one is not. Value is plain text unless HTML is
// set, in which case it is the inner HTML of an editable element and is
// reduced to its text content.
type ValueRequest struct {
	Value *string `json:"value" validate:"required"`
	HTML  bool    `json:"html,omitempty"`
}

// apply runs one full edit cycle of session with the request's draft
func (req ValueRequest) apply(session *editor.Session) error {
	if req.HTML {
		return session.ApplyHTML(*req.Value)
	}
	return session.Apply(*req.Value)
}

// AddSectionRequest is the body of POST /resume/sections
type AddSectionRequest struct {
	Type  string `json:"type" validate:"required"`
	Title string `json:"title,omitempty"`
}

// AddSectionResponse is returned after a section is added
type AddSectionResponse struct {
	ID       string               `json:"id"`
	Document types.ResumeDocument `json:"document"`
}

// MoveRequest is the body of POST /resume/sections/{id}/move
type MoveRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// handleGetResume returns the current document
func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Current())
}

// handleReplaceResume replaces the whole document after schema validation
func (s *Server) handleReplaceResume(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := store.Decode(data)
	if err != nil {
		s.domainError(w, err)
		return
	}
	if err := s.store.Commit(r.Context(), doc); err != nil {
		s.domainError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.store.Current())
}

// handleResetResume restores the default template
func (s *Server) handleResetResume(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Reset(r.Context())
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleSetField commits one top-level scalar field
func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.domainError(w, err)
		return
	}

	session, err := editor.FieldSession(r.Context(), s.store, types.Field(r.PathValue("field")))
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.applySession(w, session, req)
}

// handleAddSection appends a section seeded with its type's template
func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req AddSectionRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.domainError(w, err)
		return
	}

	t := types.SectionType(req.Type)
	if !t.Valid() {
		s.domainError(w, &ErrValidation{Field: "type", Message: fmt.Sprintf("unknown section type %q", req.Type)})
		return
	}

	var id string
	doc, err := s.store.Update(r.Context(), func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		next, newID, err := store.AddSection(doc, t, req.Title)
		id = newID
		return next, err
	})
	if err != nil {
		s.domainError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, AddSectionResponse{ID: id, Document: doc})
}

// handleRemoveSection deletes a section
func (s *Server) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, err := s.store.Update(r.Context(), func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		if _, ok := doc.Section(id); !ok {
			return doc, &ErrSectionNotFound{ID: id}
		}
		return store.RemoveSection(doc, id), nil
	})
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleMoveSection moves a section one position up or down
func (s *Server) handleMoveSection(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.domainError(w, err)
		return
	}
	dir, err := store.ParseDirection(req.Direction)
	if err != nil {
		s.domainError(w, &ErrValidation{Field: "direction", Message: err.Error()})
		return
	}

	id := r.PathValue("id")
	doc, err := s.store.Update(r.Context(), func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		if _, ok := doc.Section(id); !ok {
			return doc, &ErrSectionNotFound{ID: id}
		}
		return store.ReorderSection(doc, id, dir), nil
	})
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleSetTitle commits a section heading
func (s *Server) handleSetTitle(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.domainError(w, err)
		return
	}

	session, err := editor.TitleSession(r.Context(), s.store, r.PathValue("id"))
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.applySession(w, session, req)
}

// applySession runs one full edit cycle and answers with the document
func (s *Server) applySession(w http.ResponseWriter, session *editor.Session, req ValueRequest) {
	if err := req.apply(session); err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Current())
}

// section returns the current section with the request's {id}
func (s *Server) section(r *http.Request) (types.Section, error) {
	id := r.PathValue("id")
	sec, ok := s.store.Current().Section(id)
	if !ok {
		return types.Section{}, &ErrSectionNotFound{ID: id}
	}
	return sec, nil
}

// pathIndex parses a non-negative integer path value
func pathIndex(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		return 0, &ErrValidation{Field: name, Message: fmt.Sprintf("invalid index %q", raw)}
	}
	return i, nil
}
