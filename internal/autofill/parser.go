package autofill

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/jonathan/resume-builder/internal/document"
)

// uploadFieldName is the multipart field the external parse endpoint
// expects the file under.
const uploadFieldName = "file"

// ParserClient calls the external resume parsing endpoint.
type ParserClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewParserClient creates a client for the parse endpoint at baseURL.
func NewParserClient(baseURL string, timeout time.Duration) *ParserClient {
	return &ParserClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Parse submits the file and decodes the structured result. Any
// non-success response or transport error is returned as an
// UpstreamError without side effects.
func (c *ParserClient) Parse(ctx context.Context, filename string, data []byte) (*document.ResumeData, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(uploadFieldName, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build parse request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Op: "upload parse", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Op: "upload parse", Status: resp.StatusCode, Message: parseErrorMessage(resp.Body)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Op: "upload parse", Message: err.Error()}
	}
	return decodeParsedResume(raw)
}

func parseErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return "unreadable error response"
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return string(raw)
}
