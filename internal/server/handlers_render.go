package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/middleware"
)

// handleRender renders a document payload to HTML with its selected
// template and accent color.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRenderRequest(r)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.checkTemplateTier(r, req); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	html, err := s.renderHTML(req, req.TemplateID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, RenderResponse{TemplateID: req.TemplateID, ColorID: req.ColorID, HTML: html})
}

// handleRenderPreview renders the document with every template of its
// kind concurrently, so the picker can show live thumbnails. Premium
// templates are included regardless of tier; saving them is what's gated.
func (s *Server) handleRenderPreview(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRenderRequest(r)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	templates := catalog.Templates(catalog.DocumentKind(req.Kind))
	previews := make([]RenderResponse, len(templates))

	// Report the swatch the renderer actually uses: the request color when
	// given, otherwise the document's own selection, resolved through the
	// catalog so stale or missing ids read back as the real fallback.
	colorID := req.ColorID
	if colorID == "" {
		var sel struct {
			ColorID string `json:"colorId"`
		}
		_ = json.Unmarshal(req.Data, &sel)
		colorID = sel.ColorID
	}
	colorID = catalog.ResolveColor(colorID).ID

	g, _ := errgroup.WithContext(r.Context())
	for i, tmpl := range templates {
		g.Go(func() error {
			html, err := s.renderHTML(req, tmpl.ID)
			if err != nil {
				return fmt.Errorf("template %s: %w", tmpl.ID, err)
			}
			previews[i] = RenderResponse{TemplateID: tmpl.ID, ColorID: colorID, HTML: html}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, previews)
}

// handleExportPDF renders the document and prints it to PDF. Export is a
// paid feature.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if catalog.ParseTier(user.Tier) == catalog.TierFree {
		err := &ErrTierRequired{Feature: "PDF export", MinTier: string(catalog.TierPro)}
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	req, err := s.decodeRenderRequest(r)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	html, err := s.renderHTML(req, req.TemplateID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	pdf, err := s.exporter.ExportPDF(r.Context(), html)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="document.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (s *Server) decodeRenderRequest(r *http.Request) (*RenderRequest, error) {
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, &ErrValidation{Field: "body", Message: extractValidationErrors(err)}
	}
	return &req, nil
}

// renderHTML decodes the payload for its kind and renders it with the
// given template id.
func (s *Server) renderHTML(req *RenderRequest, templateID string) (string, error) {
	switch catalog.DocumentKind(req.Kind) {
	case catalog.KindResume:
		if err := document.ValidateResumeJSON(req.Data); err != nil {
			return "", err
		}
		var doc document.ResumeData
		if err := json.Unmarshal(req.Data, &doc); err != nil {
			return "", err
		}
		return rendering.RenderResume(&doc, templateID, req.ColorID)
	default:
		if err := document.ValidateCoverLetterJSON(req.Data); err != nil {
			return "", err
		}
		var doc document.CoverLetterData
		if err := json.Unmarshal(req.Data, &doc); err != nil {
			return "", err
		}
		return rendering.RenderCoverLetter(&doc, templateID, req.ColorID)
	}
}

// checkTemplateTier rejects single-template renders of premium templates
// for free-tier users.
func (s *Server) checkTemplateTier(r *http.Request, req *RenderRequest) error {
	tmpl, ok := catalog.LookupTemplate(catalog.DocumentKind(req.Kind), req.TemplateID)
	if !ok || tmpl.MinTier == catalog.TierFree {
		return nil
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		return err
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
