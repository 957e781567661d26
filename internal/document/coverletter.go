package document

import "github.com/jonathan/resume-builder/internal/catalog"

// SenderInfo holds the letter author's details. First name, last name, and
// email are required before the wizard will advance past the sender step;
// every field is optional at the data-model level.
type SenderInfo struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
}

// RecipientInfo holds the addressee's details, independently optional per field.
type RecipientInfo struct {
	Name    string `json:"name,omitempty"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

// CoverLetterData is the root cover letter entity, one per document.
// Body is paragraph-delimited by newline; renderers emit one block per
// paragraph.
type CoverLetterData struct {
	SenderInfo    *SenderInfo    `json:"senderInfo,omitempty"`
	RecipientInfo *RecipientInfo `json:"recipientInfo,omitempty"`
	Date          string         `json:"date,omitempty"`
	Subject       string         `json:"subject,omitempty"`
	Body          string         `json:"body,omitempty"`
	TemplateID    string         `json:"templateId,omitempty"`
	ColorID       string         `json:"colorId,omitempty"`
}

// NewCoverLetter returns an empty cover letter seeded with the given
// template and color selection. Empty ids fall back to the catalog defaults.
func NewCoverLetter(templateID, colorID string) *CoverLetterData {
	return &CoverLetterData{
		TemplateID: catalog.ResolveTemplate(catalog.KindCoverLetter, templateID).ID,
		ColorID:    catalog.ResolveColor(colorID).ID,
	}
}

// Clone returns a deep copy of the cover letter.
func (c *CoverLetterData) Clone() *CoverLetterData {
	if c == nil {
		return nil
	}
	out := *c
	if c.SenderInfo != nil {
		si := *c.SenderInfo
		out.SenderInfo = &si
	}
	if c.RecipientInfo != nil {
		ri := *c.RecipientInfo
		out.RecipientInfo = &ri
	}
	return &out
}
