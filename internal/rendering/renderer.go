package rendering

import (
	"embed"
	"strings"
	"text/template"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/document"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcMap = template.FuncMap{
	"escape": EscapeHTML,
	"join":   JoinNonEmpty,
}

// ResumeRenderer renders one resume template style. Implementations are
// pure: identical input yields byte-identical output, and missing or
// partial data never causes a failure.
type ResumeRenderer interface {
	Render(doc *document.ResumeData, accent catalog.Color) (string, error)
}

// CoverLetterRenderer renders one cover letter template style under the
// same contract as ResumeRenderer.
type CoverLetterRenderer interface {
	Render(doc *document.CoverLetterData, accent catalog.Color) (string, error)
}

type resumeTemplate struct {
	file string
	tmpl *template.Template
}

func (r *resumeTemplate) Render(doc *document.ResumeData, accent catalog.Color) (string, error) {
	var out strings.Builder
	if err := r.tmpl.ExecuteTemplate(&out, r.file, buildResumeView(doc, accent.Hex)); err != nil {
		return "", &TemplateError{Message: "failed to execute resume template " + r.file, Cause: err}
	}
	return out.String(), nil
}

type coverLetterTemplate struct {
	file string
	tmpl *template.Template
}

func (r *coverLetterTemplate) Render(doc *document.CoverLetterData, accent catalog.Color) (string, error) {
	var out strings.Builder
	if err := r.tmpl.ExecuteTemplate(&out, r.file, buildCoverLetterView(doc, accent.Hex)); err != nil {
		return "", &TemplateError{Message: "failed to execute cover letter template " + r.file, Cause: err}
	}
	return out.String(), nil
}

func mustParse(file string) *template.Template {
	return template.Must(template.New(file).Funcs(funcMap).ParseFS(templateFS, "templates/"+file))
}

func newResumeTemplate(id string) ResumeRenderer {
	file := "resume_" + id + ".tmpl"
	return &resumeTemplate{file: file, tmpl: mustParse(file)}
}

func newCoverLetterTemplate(id string) CoverLetterRenderer {
	file := "cover_" + id + ".tmpl"
	return &coverLetterTemplate{file: file, tmpl: mustParse(file)}
}

// One renderer per catalog template id, selected by lookup.
var resumeRenderers = map[string]ResumeRenderer{
	"clean":   newResumeTemplate("clean"),
	"modern":  newResumeTemplate("modern"),
	"classic": newResumeTemplate("classic"),
	"minimal": newResumeTemplate("minimal"),
	"bold":    newResumeTemplate("bold"),
}

var coverLetterRenderers = map[string]CoverLetterRenderer{
	"formal": newCoverLetterTemplate("formal"),
	"simple": newCoverLetterTemplate("simple"),
	"accent": newCoverLetterTemplate("accent"),
}

// NoTemplateHTML is returned when no template selection can be resolved
// at all (no document, or no template id anywhere). A stale-but-present
// id falls back to the catalog default instead.
const NoTemplateHTML = `<!DOCTYPE html>
<html>
<body>
<div class="empty-state">No template selected</div>
</body>
</html>
`

// RenderResume maps (documentData, templateId, colorId) to HTML. Empty
// templateID and colorID arguments fall back to the document's own
// selection; unknown ids resolve to the catalog defaults. The function is
// deterministic and never fails on missing or partial document data.
func RenderResume(doc *document.ResumeData, templateID, colorID string) (string, error) {
	if doc == nil {
		return NoTemplateHTML, nil
	}
	if templateID == "" {
		templateID = doc.TemplateID
	}
	if colorID == "" {
		colorID = doc.ColorID
	}
	if templateID == "" {
		return NoTemplateHTML, nil
	}

	tmpl := catalog.ResolveTemplate(catalog.KindResume, templateID)
	renderer, ok := resumeRenderers[tmpl.ID]
	if !ok {
		return NoTemplateHTML, nil
	}
	return renderer.Render(doc, catalog.ResolveColor(colorID))
}

// RenderCoverLetter is the cover letter counterpart of RenderResume.
func RenderCoverLetter(doc *document.CoverLetterData, templateID, colorID string) (string, error) {
	if doc == nil {
		return NoTemplateHTML, nil
	}
	if templateID == "" {
		templateID = doc.TemplateID
	}
	if colorID == "" {
		colorID = doc.ColorID
	}
	if templateID == "" {
		return NoTemplateHTML, nil
	}

	tmpl := catalog.ResolveTemplate(catalog.KindCoverLetter, templateID)
	renderer, ok := coverLetterRenderers[tmpl.ID]
	if !ok {
		return NoTemplateHTML, nil
	}
	return renderer.Render(doc, catalog.ResolveColor(colorID))
}
