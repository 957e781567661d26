// Package builder holds the in-progress document for one editing session:
// a state container with named mutation operations, the wizard step
// machine that sequences edits, and the upload merge rules.
package builder

import (
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/document"
)

// Section names a repeatable resume section addressable by entry mutations.
type Section string

const (
	SectionExperiences    Section = "experiences"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionCertifications Section = "certifications"
)

// Listener is invoked after every mutation so readers can re-render.
type Listener func()

// Store holds exactly one in-progress document. All operations are
// synchronous and total: none can fail, and operations targeting absent
// entries or unknown fields are no-ops. The store never persists anything
// on its own.
//
// The assumed usage is a single active editor per document per session;
// the mutex only guards against handler goroutines touching the same
// session, it is not a transaction boundary.
type Store struct {
	mu        sync.Mutex
	kind      catalog.DocumentKind
	resume    *document.ResumeData
	cover     *document.CoverLetterData
	listeners []Listener

	// seed selection restored by Reset
	seedTemplateID string
	seedColorID    string
}

// NewResumeStore creates a store holding an empty resume, optionally seeded
// with a template/color selection (e.g. from the gallery query string).
func NewResumeStore(templateID, colorID string) *Store {
	s := &Store{kind: catalog.KindResume, seedTemplateID: templateID, seedColorID: colorID}
	s.resume = document.NewResume(templateID, colorID)
	return s
}

// NewCoverLetterStore creates a store holding an empty cover letter.
func NewCoverLetterStore(templateID, colorID string) *Store {
	s := &Store{kind: catalog.KindCoverLetter, seedTemplateID: templateID, seedColorID: colorID}
	s.cover = document.NewCoverLetter(templateID, colorID)
	return s
}

// Kind reports which document type this store holds.
func (s *Store) Kind() catalog.DocumentKind {
	return s.kind
}

// Resume returns a deep copy of the current resume, or nil for a cover
// letter store. Callers never observe later mutations through the copy.
func (s *Store) Resume() *document.ResumeData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resume.Clone()
}

// CoverLetter returns a deep copy of the current cover letter, or nil for
// a resume store.
func (s *Store) CoverLetter() *document.CoverLetterData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cover.Clone()
}

// Subscribe registers a listener invoked after every mutation.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// SetResume replaces the entire resume. Used when loading a saved document
// or completing an upload merge. A nil replacement restores the default.
func (s *Store) SetResume(doc *document.ResumeData) {
	s.mu.Lock()
	if doc == nil {
		s.resume = document.NewResume(s.seedTemplateID, s.seedColorID)
	} else {
		s.resume = doc.Clone()
	}
	s.mu.Unlock()
	s.notify()
}

// SetCoverLetter replaces the entire cover letter.
func (s *Store) SetCoverLetter(doc *document.CoverLetterData) {
	s.mu.Lock()
	if doc == nil {
		s.cover = document.NewCoverLetter(s.seedTemplateID, s.seedColorID)
	} else {
		s.cover = doc.Clone()
	}
	s.mu.Unlock()
	s.notify()
}

// AddExperience appends an experience entry with a newly generated id and
// returns that id. On a cover letter store this is a no-op returning the
// empty string, as are all resume-section mutations.
func (s *Store) AddExperience(e document.Experience) string {
	s.mu.Lock()
	if s.resume == nil {
		s.mu.Unlock()
		return ""
	}
	e.ID = document.NewEntryID()
	s.resume.Experiences = append(s.resume.Experiences, e)
	s.mu.Unlock()
	s.notify()
	return e.ID
}

// AddEducation appends an education entry with a newly generated id.
func (s *Store) AddEducation(e document.Education) string {
	s.mu.Lock()
	if s.resume == nil {
		s.mu.Unlock()
		return ""
	}
	e.ID = document.NewEntryID()
	s.resume.Education = append(s.resume.Education, e)
	s.mu.Unlock()
	s.notify()
	return e.ID
}

// AddSkill appends a skill entry with a newly generated id. Adding a skill
// whose name matches an existing one case-insensitively is a no-op and
// returns the empty string.
func (s *Store) AddSkill(sk document.Skill) string {
	s.mu.Lock()
	if s.resume == nil {
		s.mu.Unlock()
		return ""
	}
	for _, existing := range s.resume.Skills {
		if strings.EqualFold(existing.Name, sk.Name) {
			s.mu.Unlock()
			return ""
		}
	}
	sk.ID = document.NewEntryID()
	s.resume.Skills = append(s.resume.Skills, sk)
	s.mu.Unlock()
	s.notify()
	return sk.ID
}

// AddCertification appends a certification entry with a newly generated id.
func (s *Store) AddCertification(c document.Certification) string {
	s.mu.Lock()
	if s.resume == nil {
		s.mu.Unlock()
		return ""
	}
	c.ID = document.NewEntryID()
	s.resume.Certifications = append(s.resume.Certifications, c)
	s.mu.Unlock()
	s.notify()
	return c.ID
}

// RemoveEntry removes the entry with the matching id from the named
// section. Removing an absent id is a no-op.
func (s *Store) RemoveEntry(section Section, id string) {
	s.mu.Lock()
	if s.resume == nil {
		s.mu.Unlock()
		return
	}
	switch section {
	case SectionExperiences:
		s.resume.Experiences = removeByID(s.resume.Experiences, id, func(e document.Experience) string { return e.ID })
	case SectionEducation:
		s.resume.Education = removeByID(s.resume.Education, id, func(e document.Education) string { return e.ID })
	case SectionSkills:
		s.resume.Skills = removeByID(s.resume.Skills, id, func(e document.Skill) string { return e.ID })
	case SectionCertifications:
		s.resume.Certifications = removeByID(s.resume.Certifications, id, func(e document.Certification) string { return e.ID })
	}
	s.mu.Unlock()
	s.notify()
}

func removeByID[T any](entries []T, id string, idOf func(T) string) []T {
	out := entries[:0]
	for _, e := range entries {
		if idOf(e) != id {
			out = append(out, e)
		}
	}
	return out
}

// SetTemplate sets the template selection.
func (s *Store) SetTemplate(templateID string) {
	s.mu.Lock()
	if s.resume != nil {
		s.resume.TemplateID = templateID
	}
	if s.cover != nil {
		s.cover.TemplateID = templateID
	}
	s.mu.Unlock()
	s.notify()
}

// SetColor sets the color selection.
func (s *Store) SetColor(colorID string) {
	s.mu.Lock()
	if s.resume != nil {
		s.resume.ColorID = colorID
	}
	if s.cover != nil {
		s.cover.ColorID = colorID
	}
	s.mu.Unlock()
	s.notify()
}

// Reset restores the default empty document, keeping the seed selection.
func (s *Store) Reset() {
	s.mu.Lock()
	if s.kind == catalog.KindCoverLetter {
		s.cover = document.NewCoverLetter(s.seedTemplateID, s.seedColorID)
	} else {
		s.resume = document.NewResume(s.seedTemplateID, s.seedColorID)
	}
	s.mu.Unlock()
	s.notify()
}
