package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/editor"
)

// itemEditor builds the list editor for the request's section
func (s *Server) itemEditor(r *http.Request) (editor.ItemEditor, error) {
	sec, err := s.section(r)
	if err != nil {
		return nil, err
	}
	return editor.Items(sec, editor.SectionCommit(r.Context(), s.store, sec.ID))
}

// itemEdit resolves the editor and the {index} path value, then runs fn
func (s *Server) itemEdit(w http.ResponseWriter, r *http.Request, fn func(ed editor.ItemEditor, i int) error) {
	ed, err := s.itemEditor(r)
	if err != nil {
		s.domainError(w, err)
		return
	}
	i, err := pathIndex(r, "index")
	if err != nil {
		s.domainError(w, err)
		return
	}
	if err := fn(ed, i); err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Current())
}

// handleAppendItem appends a template item to a list section
func (s *Server) handleAppendItem(w http.ResponseWriter, r *http.Request) {
	ed, err := s.itemEditor(r)
	if err != nil {
		s.domainError(w, err)
		return
	}
	if err := ed.Append(); err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, s.store.Current())
}

// handleRemoveItem removes one item of a list section
func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	s.itemEdit(w, r, func(ed editor.ItemEditor, i int) error {
		return ed.Remove(i)
	})
}

// handleSetItemField commits one field of one item
func (s *Server) handleSetItemField(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.domainError(w, err)
		return
	}
	s.itemEdit(w, r, func(ed editor.ItemEditor, i int) error {
		session, err := editor.ItemFieldSession(ed, i, r.PathValue("field"))
		if err != nil {
			return err
		}
		return req.apply(session)
	})
}

// handleAppendBullet appends a placeholder description point
func (s *Server) handleAppendBullet(w http.ResponseWriter, r *http.Request) {
	s.itemEdit(w, r, func(ed editor.ItemEditor, i int) error {
		return ed.AppendBullet(i)
	})
}

// handleSetBullet commits one description point
func (s *Server) handleSetBullet(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.domainError(w, err)
		return
	}
	s.itemEdit(w, r, func(ed editor.ItemEditor, i int) error {
		j, err := pathIndex(r, "bullet")
		if err != nil {
			return err
		}
		session, err := editor.BulletSession(ed, i, j)
		if err != nil {
			return err
		}
		return req.apply(session)
	})
}

// handleRemoveBullet removes one description point
func (s *Server) handleRemoveBullet(w http.ResponseWriter, r *http.Request) {
	s.itemEdit(w, r, func(ed editor.ItemEditor, i int) error {
		j, err := pathIndex(r, "bullet")
		if err != nil {
			return err
		}
		return ed.RemoveBullet(i, j)
	})
}

// handleSetSkillLine commits one skill category from a comma-joined line
func (s *Server) handleSetSkillLine(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.domainError(w, err)
		return
	}
	sec, err := s.section(r)
	if err != nil {
		s.domainError(w, err)
		return
	}
	ed, err := editor.Skills(sec, editor.SectionCommit(r.Context(), s.store, sec.ID))
	if err != nil {
		s.domainError(w, err)
		return
	}
	session, err := ed.Session(r.PathValue("category"))
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.applySession(w, session, req)
}

// handleSetText commits the text of a summary or custom section
func (s *Server) handleSetText(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.domainError(w, err)
		return
	}
	sec, err := s.section(r)
	if err != nil {
		s.domainError(w, err)
		return
	}
	ed, err := editor.Text(sec, editor.SectionCommit(r.Context(), s.store, sec.ID))
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.applySession(w, ed.Session(), req)
}
