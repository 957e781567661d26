package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/document"
)

// handleUploadResume parses an uploaded resume file and merges the result
// into the caller's current document. The current document's template,
// color, and section order survive the merge. A failed parse changes
// nothing; the error goes back to the caller.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	if s.uploads == nil {
		writeError(w, http.StatusServiceUnavailable, "upload parsing is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.uploadCfg.MaxBytes)
	if err := r.ParseMultipartForm(s.uploadCfg.MaxBytes); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	// The in-progress document rides along so the merge can pin its
	// template, color, and section order.
	var current *document.ResumeData
	if raw := r.FormValue("document"); raw != "" {
		if err := document.ValidateResumeJSON([]byte(raw)); err != nil {
			writeError(w, HTTPStatus(err), err.Error())
			return
		}
		current = &document.ResumeData{}
		if err := json.Unmarshal([]byte(raw), current); err != nil {
			writeError(w, http.StatusBadRequest, "invalid document field")
			return
		}
	}

	parsed, err := s.uploads.ParseResume(r.Context(), header.Filename, data)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	merged := builder.MergeParsed(current, parsed)
	writeJSON(w, http.StatusOK, merged)
}
