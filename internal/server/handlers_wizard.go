package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/document"
)

// handleValidateStep runs one wizard step's validation over a document
// payload, so the client can gate its Next button without holding a
// wizard session on the server.
func (s *Server) handleValidateStep(w http.ResponseWriter, r *http.Request) {
	var req StepValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	kind := catalog.DocumentKind(req.Kind)
	if !builder.KnownStep(kind, req.Step) {
		writeError(w, http.StatusBadRequest, "unknown step: "+req.Step)
		return
	}

	store, err := storeFromPayload(kind, req.Data)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	if err := builder.ValidateStep(req.Step, store); err != nil {
		var verr *builder.ValidationError
		if errors.As(err, &verr) {
			fields := make(map[string]string, len(verr.Fields))
			for _, f := range verr.Fields {
				fields[f.Field] = f.Message
			}
			writeJSON(w, http.StatusOK, StepValidateResponse{Valid: false, Errors: fields})
			return
		}
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StepValidateResponse{Valid: true})
}

// storeFromPayload seeds a builder store with a document payload.
func storeFromPayload(kind catalog.DocumentKind, data json.RawMessage) (*builder.Store, error) {
	if kind == catalog.KindCoverLetter {
		if err := document.ValidateCoverLetterJSON(data); err != nil {
			return nil, err
		}
		var doc document.CoverLetterData
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &ErrValidation{Field: "data", Message: "invalid cover letter payload"}
		}
		store := builder.NewCoverLetterStore(doc.TemplateID, doc.ColorID)
		store.SetCoverLetter(&doc)
		return store, nil
	}

	if err := document.ValidateResumeJSON(data); err != nil {
		return nil, err
	}
	var doc document.ResumeData
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ErrValidation{Field: "data", Message: "invalid resume payload"}
	}
	store := builder.NewResumeStore(doc.TemplateID, doc.ColorID)
	store.SetResume(&doc)
	return store, nil
}
