package rendering

import (
	"github.com/jonathan/resume-builder/internal/document"
)

// resumeView is the data structure passed to resume templates. All text is
// raw document data; templates escape on output.
type resumeView struct {
	Accent      string
	Name        string
	ContactLine string
	LinksLine   string
	Sections    []resumeSection
}

// resumeSection is one renderable section. Exactly one of the payload
// fields is populated, matching Key. Sections with no content are never
// included in the view, so templates emit no empty headings.
type resumeSection struct {
	Key            string
	Heading        string
	Summary        string
	Experiences    []experienceView
	Education      []educationView
	Skills         []skillView
	Certifications []certificationView
}

type experienceView struct {
	JobTitle    string
	Company     string
	Location    string
	Dates       string
	Description string
	Bullets     []string
}

type educationView struct {
	Degree  string
	School  string
	Detail  string // location / graduation date / gpa / honors, joined
	Courses string
}

type skillView struct {
	Name  string
	Level string
}

type certificationView struct {
	Name   string
	Detail string // issuer / date, joined
}

var sectionHeadings = map[string]string{
	document.SectionSummary:        "Summary",
	document.SectionExperience:     "Experience",
	document.SectionEducation:      "Education",
	document.SectionSkills:         "Skills",
	document.SectionCertifications: "Certifications",
}

// buildResumeView assembles the view model: full name, joined contact
// line, and the non-empty sections in document order (or the document's
// section order override). Entries keep insertion order.
func buildResumeView(doc *document.ResumeData, accentHex string) *resumeView {
	view := &resumeView{Accent: accentHex}

	if ci := doc.ContactInfo; ci != nil {
		view.Name = JoinNonEmpty(" ", ci.FirstName, ci.LastName)
		cityLine := JoinNonEmpty(", ", ci.City, ci.State)
		cityLine = JoinNonEmpty(" ", cityLine, ci.Zip)
		view.ContactLine = JoinNonEmpty(" | ", ci.Email, ci.Phone, JoinNonEmpty(", ", ci.Address, cityLine))
		view.LinksLine = JoinNonEmpty(" | ", ci.LinkedIn, ci.Website)
	}

	for _, key := range sectionOrder(doc) {
		if section, ok := buildSection(doc, key); ok {
			view.Sections = append(view.Sections, section)
		}
	}
	return view
}

// sectionOrder returns the document's section-level ordering override,
// filtered to known keys, with any omitted sections appended in default
// order. Entry-level order is never affected.
func sectionOrder(doc *document.ResumeData) []string {
	if len(doc.SectionOrder) == 0 {
		return document.DefaultSectionOrder
	}
	seen := make(map[string]bool, len(document.DefaultSectionOrder))
	out := make([]string, 0, len(document.DefaultSectionOrder))
	for _, key := range doc.SectionOrder {
		if _, known := sectionHeadings[key]; known && !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	for _, key := range document.DefaultSectionOrder {
		if !seen[key] {
			out = append(out, key)
		}
	}
	return out
}

func buildSection(doc *document.ResumeData, key string) (resumeSection, bool) {
	section := resumeSection{Key: key, Heading: sectionHeadings[key]}
	switch key {
	case document.SectionSummary:
		if doc.Summary == "" {
			return section, false
		}
		section.Summary = doc.Summary
	case document.SectionExperience:
		if len(doc.Experiences) == 0 {
			return section, false
		}
		for _, e := range doc.Experiences {
			section.Experiences = append(section.Experiences, experienceView{
				JobTitle:    e.JobTitle,
				Company:     e.Company,
				Location:    e.Location,
				Dates:       FormatDateRange(e.StartDate, e.EndDate, e.Current),
				Description: e.Description,
				Bullets:     e.Bullets,
			})
		}
	case document.SectionEducation:
		if len(doc.Education) == 0 {
			return section, false
		}
		for _, e := range doc.Education {
			detail := JoinNonEmpty(" | ", e.Location, e.GraduationDate)
			if e.GPA != "" {
				detail = JoinNonEmpty(" | ", detail, "GPA: "+e.GPA)
			}
			detail = JoinNonEmpty(" | ", detail, e.Honors)
			section.Education = append(section.Education, educationView{
				Degree:  e.Degree,
				School:  e.School,
				Detail:  detail,
				Courses: JoinNonEmpty(", ", e.RelevantCourses...),
			})
		}
	case document.SectionSkills:
		if len(doc.Skills) == 0 {
			return section, false
		}
		for _, sk := range doc.Skills {
			section.Skills = append(section.Skills, skillView{Name: sk.Name, Level: sk.Level})
		}
	case document.SectionCertifications:
		if len(doc.Certifications) == 0 {
			return section, false
		}
		for _, c := range doc.Certifications {
			section.Certifications = append(section.Certifications, certificationView{
				Name:   c.Name,
				Detail: JoinNonEmpty(" | ", c.Issuer, c.Date),
			})
		}
	}
	return section, true
}

// coverLetterView is the data structure passed to cover letter templates.
type coverLetterView struct {
	Accent         string
	SenderName     string
	SenderContact  string
	SenderAddress  string
	Date           string
	RecipientLines []string
	Subject        string
	Paragraphs     []string
}

func buildCoverLetterView(doc *document.CoverLetterData, accentHex string) *coverLetterView {
	view := &coverLetterView{
		Accent:     accentHex,
		Date:       doc.Date,
		Subject:    doc.Subject,
		Paragraphs: SplitParagraphs(doc.Body),
	}

	if si := doc.SenderInfo; si != nil {
		view.SenderName = JoinNonEmpty(" ", si.FirstName, si.LastName)
		view.SenderContact = JoinNonEmpty(" | ", si.Email, si.Phone)
		cityLine := JoinNonEmpty(", ", si.City, si.State)
		view.SenderAddress = JoinNonEmpty(", ", si.Address, JoinNonEmpty(" ", cityLine, si.Zip))
	}

	if ri := doc.RecipientInfo; ri != nil {
		for _, line := range []string{
			JoinNonEmpty(", ", ri.Name, ri.Title),
			ri.Company,
			ri.Address,
			JoinNonEmpty(" ", JoinNonEmpty(", ", ri.City, ri.State), ri.Zip),
		} {
			if line != "" {
				view.RecipientLines = append(view.RecipientLines, line)
			}
		}
	}
	return view
}
