package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResumeJSON_AcceptsMinimalPayload(t *testing.T) {
	assert.NoError(t, ValidateResumeJSON([]byte(`{}`)))
	assert.NoError(t, ValidateResumeJSON([]byte(`{"summary":"Engineer with 10 years of experience."}`)))
}

func TestValidateResumeJSON_AcceptsFullPayload(t *testing.T) {
	payload := `{
		"contactInfo": {"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com"},
		"summary": "Engineer.",
		"experiences": [{"id": "e1", "jobTitle": "Engineer", "company": "Acme", "startDate": "2020-01", "current": true, "bullets": ["Shipped things"]}],
		"education": [{"id": "ed1", "degree": "BSc", "school": "State"}],
		"skills": [{"id": "s1", "name": "Go", "level": "expert"}],
		"certifications": [{"id": "c1", "name": "Cloud Cert"}],
		"templateId": "modern",
		"colorId": "blue",
		"sectionOrder": ["skills", "experience"]
	}`
	assert.NoError(t, ValidateResumeJSON([]byte(payload)))
}

func TestValidateResumeJSON_RejectsUnknownField(t *testing.T) {
	err := ValidateResumeJSON([]byte(`{"hobbies": ["golf"]}`))
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.NotEmpty(t, schemaErr.Errors)
}

func TestValidateResumeJSON_RejectsWrongTypes(t *testing.T) {
	assert.Error(t, ValidateResumeJSON([]byte(`{"summary": 42}`)))
	assert.Error(t, ValidateResumeJSON([]byte(`{"experiences": [{"current": "yes"}]}`)))
}

func TestValidateResumeJSON_SkillRequiresName(t *testing.T) {
	err := ValidateResumeJSON([]byte(`{"skills": [{"level": "expert"}]}`))
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "skills.0", schemaErr.Errors[0].Field)
}

func TestValidateCoverLetterJSON(t *testing.T) {
	valid := `{
		"senderInfo": {"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com"},
		"recipientInfo": {"name": "Pat Smith", "company": "Acme"},
		"subject": "Application",
		"body": "Dear Pat,\n\nI am writing to apply."
	}`
	assert.NoError(t, ValidateCoverLetterJSON([]byte(valid)))
	assert.Error(t, ValidateCoverLetterJSON([]byte(`{"body": 7}`)))
	assert.Error(t, ValidateCoverLetterJSON([]byte(`{"unknown": true}`)))
}

func TestResumeClone_IsDeep(t *testing.T) {
	orig := &ResumeData{
		ContactInfo: &ContactInfo{FirstName: "Jane"},
		Experiences: []Experience{{ID: "e1", Bullets: []string{"a"}}},
		Skills:      []Skill{{ID: "s1", Name: "Go"}},
	}
	clone := orig.Clone()

	clone.ContactInfo.FirstName = "Pat"
	clone.Experiences[0].Bullets[0] = "b"
	clone.Skills[0].Name = "Rust"

	assert.Equal(t, "Jane", orig.ContactInfo.FirstName)
	assert.Equal(t, "a", orig.Experiences[0].Bullets[0])
	assert.Equal(t, "Go", orig.Skills[0].Name)
}

func TestNewResume_SeedsDefaults(t *testing.T) {
	doc := NewResume("", "")
	assert.Equal(t, "clean", doc.TemplateID)
	assert.Equal(t, "slate", doc.ColorID)

	doc = NewResume("bold", "crimson")
	assert.Equal(t, "bold", doc.TemplateID)
	assert.Equal(t, "crimson", doc.ColorID)
}

func TestNewEntryID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewEntryID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
