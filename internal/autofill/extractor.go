package autofill

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/resume-builder/internal/document"
)

// Extractor turns raw resume text into structured ResumeData.
type Extractor interface {
	ExtractResume(ctx context.Context, text string) (*document.ResumeData, error)
	Close() error
}

const extractPrompt = `You are a resume parser. Extract the resume below into JSON with this exact shape (omit fields that are not present, never invent data):

{
  "contactInfo": {"firstName": "", "lastName": "", "email": "", "phone": "", "city": "", "state": "", "linkedin": "", "website": ""},
  "summary": "",
  "experiences": [{"jobTitle": "", "company": "", "location": "", "startDate": "", "endDate": "", "current": false, "description": "", "bullets": [""]}],
  "education": [{"degree": "", "school": "", "location": "", "graduationDate": "", "gpa": ""}],
  "skills": [{"name": "", "level": ""}],
  "certifications": [{"name": "", "issuer": "", "date": ""}]
}

Respond with JSON only.

Resume text:
`

// GeminiExtractor implements Extractor using the Gemini API.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates an extractor bound to the given model.
func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

// ExtractResume asks the model for structured JSON and validates it
// against the resume schema before unmarshaling.
func (e *GeminiExtractor) ExtractResume(ctx context.Context, text string) (*document.ResumeData, error) {
	model := e.client.GenerativeModel(e.model)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(extractPrompt+text))
	if err != nil {
		return nil, &UpstreamError{Op: "resume extraction", Message: err.Error()}
	}

	raw, err := textFromResponse(resp)
	if err != nil {
		return nil, err
	}
	return decodeParsedResume([]byte(cleanJSONBlock(raw)))
}

// Close releases the underlying client.
func (e *GeminiExtractor) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &UpstreamError{Op: "resume extraction", Message: "empty model response"}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", &UpstreamError{Op: "resume extraction", Message: "no text in model response"}
	}
	return sb.String(), nil
}

// cleanJSONBlock strips markdown code fences the model sometimes wraps
// around JSON output.
func cleanJSONBlock(text string) string {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// decodeParsedResume schema-checks and unmarshals a parsed payload. Both
// the external parser and the LLM path pass through here, so malformed
// shapes are rejected before they can reach the renderer.
func decodeParsedResume(raw []byte) (*document.ResumeData, error) {
	if err := document.ValidateResumeJSON(raw); err != nil {
		return nil, fmt.Errorf("parsed resume rejected: %w", err)
	}
	var parsed document.ResumeData
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode parsed resume: %w", err)
	}
	return &parsed, nil
}
