package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validateStep(t *testing.T, s *Server, req StepValidateRequest) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(req)
	require.NoError(t, err)
	httpReq := httptest.NewRequest(http.MethodPost, "/wizard/validate", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	s.handleValidateStep(rec, httpReq)
	return rec
}

func TestValidateStepAccepted(t *testing.T) {
	s, _ := newTestServer()

	rec := validateStep(t, s, StepValidateRequest{
		Kind: "cover_letter",
		Step: "sender",
		Data: json.RawMessage(minimalCoverLetterJSON),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp StepValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Errors)
}

func TestValidateStepReportsMissingSenderFields(t *testing.T) {
	s, _ := newTestServer()

	rec := validateStep(t, s, StepValidateRequest{
		Kind: "cover_letter",
		Step: "sender",
		Data: json.RawMessage(`{"senderInfo": {"firstName": "Jane", "email": "not-an-email"}}`),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp StepValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "is required", resp.Errors["senderInfo.lastName"])
	assert.Equal(t, "must be a valid email address", resp.Errors["senderInfo.email"])
	assert.NotContains(t, resp.Errors, "senderInfo.firstName")
}

func TestValidateStepContactEmailOptional(t *testing.T) {
	s, _ := newTestServer()

	rec := validateStep(t, s, StepValidateRequest{
		Kind: "resume",
		Step: "contact",
		Data: json.RawMessage(`{"contactInfo": {"firstName": "Jane"}}`),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp StepValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
}

func TestValidateStepRejectsUnknownStep(t *testing.T) {
	s, _ := newTestServer()

	rec := validateStep(t, s, StepValidateRequest{
		Kind: "resume",
		Step: "sender", // cover letter step, not a resume step
		Data: json.RawMessage(minimalResumeJSON),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown step")
}

func TestValidateStepRejectsInvalidPayload(t *testing.T) {
	s, _ := newTestServer()

	rec := validateStep(t, s, StepValidateRequest{
		Kind: "resume",
		Step: "contact",
		Data: json.RawMessage(`{"bogusSection": {}}`),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
