package builder

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-builder/internal/catalog"
)

// Step names used by the wizards.
const (
	StepContact    = "contact"
	StepSummary    = "summary"
	StepExperience = "experience"
	StepEducation  = "education"
	StepSkills     = "skills"
	StepUpload     = "upload"
	StepRecipient  = "recipient"
	StepSender     = "sender"
	StepContent    = "content"
	StepReview     = "review"
)

// StepError is a field-scoped validation message produced by a blocked
// transition.
type StepError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError blocks a Next() transition. The document is not mutated
// and progress is not reset.
type ValidationError struct {
	Step   string      `json:"step"`
	Fields []StepError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("step %q blocked: %s", e.Step, strings.Join(parts, "; "))
}

// Wizard sequences an ordered list of named steps over a Store. States are
// step indices 0..N-1; Next/Back are the only transitions apart from the
// explicit upload shortcut.
type Wizard struct {
	store *Store
	steps []string
	index int
}

var validate = validator.New()

// NewResumeWizard builds the resume step sequence. The upload step comes
// first so a parsed resume can short-circuit the form steps.
func NewResumeWizard(store *Store) *Wizard {
	return &Wizard{
		store: store,
		steps: []string{StepUpload, StepContact, StepSummary, StepExperience, StepEducation, StepSkills, StepReview},
	}
}

// NewCoverLetterWizard builds the cover letter step sequence.
func NewCoverLetterWizard(store *Store) *Wizard {
	return &Wizard{
		store: store,
		steps: []string{StepRecipient, StepSender, StepContent, StepReview},
	}
}

// Index returns the current step index.
func (w *Wizard) Index() int {
	return w.index
}

// Current returns the current step name.
func (w *Wizard) Current() string {
	return w.steps[w.index]
}

// Steps returns the ordered step names.
func (w *Wizard) Steps() []string {
	return append([]string(nil), w.steps...)
}

// Next advances to the following step after validating the current step's
// required fields. At the terminal step it is a no-op. A validation
// failure blocks the transition and returns field-scoped messages.
func (w *Wizard) Next() error {
	if err := ValidateStep(w.Current(), w.store); err != nil {
		return err
	}
	if w.index < len(w.steps)-1 {
		w.index++
	}
	return nil
}

// Back moves to the previous step; at step 0 it is a no-op. Data already
// written to the store is kept.
func (w *Wizard) Back() {
	if w.index > 0 {
		w.index--
	}
}

// SkipToContent implements the "skip & build new" shortcut from the upload
// step: it jumps directly to the first content step, bypassing validation.
func (w *Wizard) SkipToContent() {
	for i, name := range w.steps {
		if name != StepUpload {
			w.index = i
			return
		}
	}
}

// senderStepFields are the sender fields required before the wizard may
// advance past the sender step.
type senderStepFields struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
}

// contactStepFields are checked on the resume contact step. Only the email
// format is enforced; all contact fields are otherwise optional.
type contactStepFields struct {
	Email string `validate:"omitempty,email"`
}

// ValidateStep checks the required fields of one named step against the
// store. It is exported so the API can mirror wizard validation without a
// server-side wizard session.
func ValidateStep(step string, store *Store) error {
	switch step {
	case StepSender:
		doc := store.CoverLetter()
		fields := senderStepFields{}
		if doc != nil && doc.SenderInfo != nil {
			fields.FirstName = doc.SenderInfo.FirstName
			fields.LastName = doc.SenderInfo.LastName
			fields.Email = doc.SenderInfo.Email
		}
		return stepError(step, "senderInfo", validate.Struct(fields))
	case StepContact:
		doc := store.Resume()
		fields := contactStepFields{}
		if doc != nil && doc.ContactInfo != nil {
			fields.Email = doc.ContactInfo.Email
		}
		return stepError(step, "contactInfo", validate.Struct(fields))
	default:
		return nil
	}
}

// stepError converts validator errors into a field-scoped ValidationError.
func stepError(step, prefix string, err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Step: step, Fields: []StepError{{Field: prefix, Message: err.Error()}}}
	}
	out := &ValidationError{Step: step}
	for _, fe := range verrs {
		field := prefix + "." + lowerFirst(fe.Field())
		msg := "is required"
		if fe.Tag() == "email" {
			msg = "must be a valid email address"
		}
		out.Fields = append(out.Fields, StepError{Field: field, Message: msg})
	}
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// kindSteps returns the step sequence for a document kind; used by the API
// to validate step names.
func kindSteps(kind catalog.DocumentKind) []string {
	if kind == catalog.KindCoverLetter {
		return []string{StepRecipient, StepSender, StepContent, StepReview}
	}
	return []string{StepUpload, StepContact, StepSummary, StepExperience, StepEducation, StepSkills, StepReview}
}

// KnownStep reports whether step belongs to the wizard for kind.
func KnownStep(kind catalog.DocumentKind, step string) bool {
	for _, s := range kindSteps(kind) {
		if s == step {
			return true
		}
	}
	return false
}
