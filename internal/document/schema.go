package document

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// FieldError is a single validation failure at a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SchemaError reports why a payload failed boundary validation.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:\n")
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, fe.Field, fe.Message))
	}
	return sb.String()
}

// ValidateResumeJSON checks raw resume JSON against the embedded schema.
// Payloads from the store, the upload parser, and the LLM extractor all
// pass through here before they reach the renderer.
func ValidateResumeJSON(data []byte) error {
	return validateAgainst("schemas/resume.schema.json", data)
}

// ValidateCoverLetterJSON checks raw cover letter JSON against the embedded schema.
func ValidateCoverLetterJSON(data []byte) error {
	return validateAgainst("schemas/coverletter.schema.json", data)
}

func validateAgainst(schemaPath string, data []byte) error {
	schemaBytes, err := schemaFS.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema %s: %w", schemaPath, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation could not run: %w", err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return schemaErr
}
