package builder

import "github.com/jonathan/resume-builder/internal/document"

// MergeParsed merges a parsed upload payload into the current resume. The
// parsed payload is the base; the current document's template, color, and
// section order always take precedence over anything in the payload.
// Entries arriving without ids are assigned fresh ones.
func MergeParsed(current, parsed *document.ResumeData) *document.ResumeData {
	if parsed == nil {
		return current.Clone()
	}
	merged := parsed.Clone()

	if current != nil {
		merged.TemplateID = current.TemplateID
		merged.ColorID = current.ColorID
		merged.SectionOrder = append([]string(nil), current.SectionOrder...)
	}

	for i := range merged.Experiences {
		if merged.Experiences[i].ID == "" {
			merged.Experiences[i].ID = document.NewEntryID()
		}
	}
	for i := range merged.Education {
		if merged.Education[i].ID == "" {
			merged.Education[i].ID = document.NewEntryID()
		}
	}
	for i := range merged.Skills {
		if merged.Skills[i].ID == "" {
			merged.Skills[i].ID = document.NewEntryID()
		}
	}
	for i := range merged.Certifications {
		if merged.Certifications[i].ID == "" {
			merged.Certifications[i].ID = document.NewEntryID()
		}
	}
	return merged
}

// ApplyParsed completes an upload merge against the store's current
// resume. On the caller's side a failed parse must never reach here; the
// store is only touched with a successful payload.
func (s *Store) ApplyParsed(parsed *document.ResumeData) {
	s.SetResume(MergeParsed(s.Resume(), parsed))
}
