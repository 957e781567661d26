// Package document provides the shared data model for resumes and cover
// letters, plus schema validation for payloads crossing trust boundaries.
package document

import (
	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/catalog"
)

// ContactInfo holds the resume owner's contact details. All fields are
// optional; renderers omit what is absent.
type ContactInfo struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Experience is one work-history entry. Current=true means the end date
// renders as "Present" regardless of the stored EndDate.
type Experience struct {
	ID          string   `json:"id"`
	JobTitle    string   `json:"jobTitle,omitempty"`
	Company     string   `json:"company,omitempty"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Current     bool     `json:"current,omitempty"`
	Description string   `json:"description,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
}

// Education is one education entry.
type Education struct {
	ID              string   `json:"id"`
	Degree          string   `json:"degree,omitempty"`
	School          string   `json:"school,omitempty"`
	Location        string   `json:"location,omitempty"`
	GraduationDate  string   `json:"graduationDate,omitempty"`
	GPA             string   `json:"gpa,omitempty"`
	Honors          string   `json:"honors,omitempty"`
	RelevantCourses []string `json:"relevantCourses,omitempty"`
}

// Skill is one skill entry. Name uniqueness (case-insensitive) is enforced
// at the mutation layer, not here.
type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Certification is one certification entry.
type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Section keys usable in ResumeData.SectionOrder.
const (
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
)

// DefaultSectionOrder is the render order used when no override is set.
var DefaultSectionOrder = []string{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionCertifications,
}

// ResumeData is the root resume entity, one per document.
type ResumeData struct {
	ContactInfo    *ContactInfo    `json:"contactInfo,omitempty"`
	Summary        string          `json:"summary,omitempty"`
	Experiences    []Experience    `json:"experiences,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Skills         []Skill         `json:"skills,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	TemplateID     string          `json:"templateId,omitempty"`
	ColorID        string          `json:"colorId,omitempty"`
	SectionOrder   []string        `json:"sectionOrder,omitempty"`
}

// NewResume returns an empty resume seeded with the given template and
// color selection. Empty ids fall back to the catalog defaults.
func NewResume(templateID, colorID string) *ResumeData {
	return &ResumeData{
		TemplateID: catalog.ResolveTemplate(catalog.KindResume, templateID).ID,
		ColorID:    catalog.ResolveColor(colorID).ID,
	}
}

// NewEntryID generates a unique identifier for a repeatable-section entry.
// Identifiers are never reused within a document's lifetime.
func NewEntryID() string {
	return uuid.New().String()
}

// Clone returns a deep copy of the resume.
func (r *ResumeData) Clone() *ResumeData {
	if r == nil {
		return nil
	}
	out := *r
	if r.ContactInfo != nil {
		ci := *r.ContactInfo
		out.ContactInfo = &ci
	}
	out.Experiences = make([]Experience, len(r.Experiences))
	for i, e := range r.Experiences {
		e.Bullets = append([]string(nil), e.Bullets...)
		out.Experiences[i] = e
	}
	out.Education = make([]Education, len(r.Education))
	for i, e := range r.Education {
		e.RelevantCourses = append([]string(nil), e.RelevantCourses...)
		out.Education[i] = e
	}
	out.Skills = append([]Skill(nil), r.Skills...)
	out.Certifications = append([]Certification(nil), r.Certifications...)
	out.SectionOrder = append([]string(nil), r.SectionOrder...)
	return &out
}
