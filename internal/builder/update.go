package builder

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/document"
)

// ExperiencePatch carries partial experience fields; nil means leave as is.
type ExperiencePatch struct {
	JobTitle    *string   `json:"jobTitle,omitempty"`
	Company     *string   `json:"company,omitempty"`
	Location    *string   `json:"location,omitempty"`
	StartDate   *string   `json:"startDate,omitempty"`
	EndDate     *string   `json:"endDate,omitempty"`
	Current     *bool     `json:"current,omitempty"`
	Description *string   `json:"description,omitempty"`
	Bullets     *[]string `json:"bullets,omitempty"`
}

// EducationPatch carries partial education fields.
type EducationPatch struct {
	Degree          *string   `json:"degree,omitempty"`
	School          *string   `json:"school,omitempty"`
	Location        *string   `json:"location,omitempty"`
	GraduationDate  *string   `json:"graduationDate,omitempty"`
	GPA             *string   `json:"gpa,omitempty"`
	Honors          *string   `json:"honors,omitempty"`
	RelevantCourses *[]string `json:"relevantCourses,omitempty"`
}

// SkillPatch carries partial skill fields.
type SkillPatch struct {
	Name  *string `json:"name,omitempty"`
	Level *string `json:"level,omitempty"`
}

// CertificationPatch carries partial certification fields.
type CertificationPatch struct {
	Name   *string `json:"name,omitempty"`
	Issuer *string `json:"issuer,omitempty"`
	Date   *string `json:"date,omitempty"`
}

// UpdateExperience merges partial fields into the experience matching id.
// Updating an absent id is a no-op, as is any entry update on a cover
// letter store.
func (s *Store) UpdateExperience(id string, patch ExperiencePatch) {
	s.mu.Lock()
	if s.resume == nil {
		s.mu.Unlock()
		return
	}
	for i := range s.resume.Experiences {
		if s.resume.Experiences[i].ID != id {
			continue
		}
		e := &s.resume.Experiences[i]
		setString(&e.JobTitle, patch.JobTitle)
		setString(&e.Company, patch.Company)
		setString(&e.Location, patch.Location)
		setString(&e.StartDate, patch.StartDate)
		setString(&e.EndDate, patch.EndDate)
		if patch.Current != nil {
			e.Current = *patch.Current
		}
		setString(&e.Description, patch.Description)
		if patch.Bullets != nil {
			e.Bullets = append([]string(nil), (*patch.Bullets)...)
		}
		break
	}
	s.mu.Unlock()
	s.notify()
}

// UpdateEducation merges partial fields into the education entry matching id.
func (s *Store) UpdateEducation(id string, patch EducationPatch) {
	s.mu.Lock()
	if s.resume == nil {
		s.mu.Unlock()
		return
	}
	for i := range s.resume.Education {
		if s.resume.Education[i].ID != id {
			continue
		}
		e := &s.resume.Education[i]
		setString(&e.Degree, patch.Degree)
		setString(&e.School, patch.School)
		setString(&e.Location, patch.Location)
		setString(&e.GraduationDate, patch.GraduationDate)
		setString(&e.GPA, patch.GPA)
		setString(&e.Honors, patch.Honors)
		if patch.RelevantCourses != nil {
			e.RelevantCourses = append([]string(nil), (*patch.RelevantCourses)...)
		}
		break
	}
	s.mu.Unlock()
	s.notify()
}

// UpdateSkill merges partial fields into the skill matching id.
func (s *Store) UpdateSkill(id string, patch SkillPatch) {
	s.mu.Lock()
	if s.resume == nil {
		s.mu.Unlock()
		return
	}
	for i := range s.resume.Skills {
		if s.resume.Skills[i].ID != id {
			continue
		}
		setString(&s.resume.Skills[i].Name, patch.Name)
		setString(&s.resume.Skills[i].Level, patch.Level)
		break
	}
	s.mu.Unlock()
	s.notify()
}

// UpdateCertification merges partial fields into the certification matching id.
func (s *Store) UpdateCertification(id string, patch CertificationPatch) {
	s.mu.Lock()
	if s.resume == nil {
		s.mu.Unlock()
		return
	}
	for i := range s.resume.Certifications {
		if s.resume.Certifications[i].ID != id {
			continue
		}
		setString(&s.resume.Certifications[i].Name, patch.Name)
		setString(&s.resume.Certifications[i].Issuer, patch.Issuer)
		setString(&s.resume.Certifications[i].Date, patch.Date)
		break
	}
	s.mu.Unlock()
	s.notify()
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// UpdateField sets a scalar or nested field addressed by a dotted path,
// e.g. "summary", "contactInfo.firstName", "senderInfo.email". Last write
// wins; unknown paths are no-ops.
func (s *Store) UpdateField(path, value string) {
	s.mu.Lock()
	head, tail, _ := strings.Cut(path, ".")
	switch head {
	case "summary":
		if s.resume != nil {
			s.resume.Summary = value
		}
	case "date":
		if s.cover != nil {
			s.cover.Date = value
		}
	case "subject":
		if s.cover != nil {
			s.cover.Subject = value
		}
	case "body":
		if s.cover != nil {
			s.cover.Body = value
		}
	case "contactInfo":
		if s.resume != nil {
			if s.resume.ContactInfo == nil {
				s.resume.ContactInfo = &document.ContactInfo{}
			}
			setContactField(s.resume.ContactInfo, tail, value)
		}
	case "senderInfo":
		if s.cover != nil {
			if s.cover.SenderInfo == nil {
				s.cover.SenderInfo = &document.SenderInfo{}
			}
			setSenderField(s.cover.SenderInfo, tail, value)
		}
	case "recipientInfo":
		if s.cover != nil {
			if s.cover.RecipientInfo == nil {
				s.cover.RecipientInfo = &document.RecipientInfo{}
			}
			setRecipientField(s.cover.RecipientInfo, tail, value)
		}
	}
	s.mu.Unlock()
	s.notify()
}

func setContactField(ci *document.ContactInfo, field, value string) {
	switch field {
	case "firstName":
		ci.FirstName = value
	case "lastName":
		ci.LastName = value
	case "email":
		ci.Email = value
	case "phone":
		ci.Phone = value
	case "address":
		ci.Address = value
	case "city":
		ci.City = value
	case "state":
		ci.State = value
	case "zip":
		ci.Zip = value
	case "linkedin":
		ci.LinkedIn = value
	case "website":
		ci.Website = value
	}
}

func setSenderField(si *document.SenderInfo, field, value string) {
	switch field {
	case "firstName":
		si.FirstName = value
	case "lastName":
		si.LastName = value
	case "email":
		si.Email = value
	case "phone":
		si.Phone = value
	case "address":
		si.Address = value
	case "city":
		si.City = value
	case "state":
		si.State = value
	case "zip":
		si.Zip = value
	}
}

func setRecipientField(ri *document.RecipientInfo, field, value string) {
	switch field {
	case "name":
		ri.Name = value
	case "title":
		ri.Title = value
	case "company":
		ri.Company = value
	case "address":
		ri.Address = value
	case "city":
		ri.City = value
	case "state":
		ri.State = value
	case "zip":
		ri.Zip = value
	}
}
