package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/server/middleware"
)

// handleCreateDocument saves a new document for the authenticated user.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.checkDocumentRequest(r, userID, &req); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	id, err := s.db.CreateDocument(r.Context(), userID, req.Kind, req.Title, req.TemplateID, req.ColorID, req.Data)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	doc, err := s.db.GetDocument(r.Context(), id, userID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// handleListDocuments returns the user's documents newest first. An
// optional kind query filters to resumes or cover letters.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind != "" && kind != string(catalog.KindResume) && kind != string(catalog.KindCoverLetter) {
		writeError(w, http.StatusBadRequest, "unknown document kind: "+kind)
		return
	}

	docs, err := s.db.ListDocuments(r.Context(), userID, kind)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// handleGetDocument returns one document; other owners' documents yield 403.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	doc, err := s.db.GetDocument(r.Context(), id, userID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleUpdateDocument overwrites a document. Concurrent updates resolve
// last write wins.
func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	var req DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.checkDocumentRequest(r, userID, &req); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	doc, err := s.db.UpdateDocument(r.Context(), id, userID, req.Title, req.TemplateID, req.ColorID, req.Data)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleDeleteDocument removes a document. Deleting an absent document
// succeeds; deleting another owner's yields 403.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	if err := s.db.DeleteDocument(r.Context(), id, userID); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// checkDocumentRequest validates the payload against the document schema
// and enforces tier gating on premium templates.
func (s *Server) checkDocumentRequest(r *http.Request, userID uuid.UUID, req *DocumentRequest) error {
	kind := catalog.DocumentKind(req.Kind)

	var err error
	if kind == catalog.KindResume {
		err = document.ValidateResumeJSON(req.Data)
	} else {
		err = document.ValidateCoverLetterJSON(req.Data)
	}
	if err != nil {
		return err
	}

	if req.TemplateID == "" {
		return nil
	}
	tmpl, ok := catalog.LookupTemplate(kind, req.TemplateID)
	if !ok {
		// Stale references are tolerated; rendering falls back to the
		// default template.
		return nil
	}
	if tmpl.MinTier == catalog.TierFree {
		return nil
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		return err
	}
	if user == nil {
		return &ErrUserNotFound{UserID: userID}
	}
	if !catalog.TierAllows(catalog.ParseTier(user.Tier), tmpl) {
		return &ErrTierRequired{Feature: "template " + tmpl.ID, MinTier: string(tmpl.MinTier)}
	}
	return nil
}
