package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/catalog"
)

// handleListTemplates returns the template catalog, optionally filtered
// by kind.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	switch kind {
	case "":
		both := append(catalog.Templates(catalog.KindResume), catalog.Templates(catalog.KindCoverLetter)...)
		writeJSON(w, http.StatusOK, both)
	case string(catalog.KindResume), string(catalog.KindCoverLetter):
		writeJSON(w, http.StatusOK, catalog.Templates(catalog.DocumentKind(kind)))
	default:
		writeError(w, http.StatusBadRequest, "unknown document kind: "+kind)
	}
}

// handleListColors returns the accent color catalog.
func (s *Server) handleListColors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Colors())
}
