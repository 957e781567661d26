package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/store"
)

const minimalResumeJSON = `{
	"contactInfo": {"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com"}
}`

const minimalCoverLetterJSON = `{
	"senderInfo": {"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com"}
}`

// authedRequest builds a request whose context already carries the user id,
// the way the auth middleware would set it.
func authedRequest(t *testing.T, userID uuid.UUID, method, path string, body any) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func createTestDocument(t *testing.T, s *Server, userID uuid.UUID, req DocumentRequest) *store.Document {
	t.Helper()
	httpReq := authedRequest(t, userID, http.MethodPost, "/documents", req)
	rec := httptest.NewRecorder()
	s.handleCreateDocument(rec, httpReq)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var doc store.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	return &doc
}

func TestCreateDocument(t *testing.T) {
	s, db := newTestServer()
	userID := seedUser(db, "jane@example.com", "free")

	doc := createTestDocument(t, s, userID, DocumentRequest{
		Kind:       "resume",
		Title:      "My Resume",
		TemplateID: "clean",
		ColorID:    "blue",
		Data:       json.RawMessage(minimalResumeJSON),
	})

	assert.Equal(t, userID, doc.OwnerID)
	assert.Equal(t, "resume", doc.Kind)
	assert.Equal(t, "My Resume", doc.Title)
	assert.Equal(t, "clean", doc.TemplateID)
	assert.Equal(t, "blue", doc.ColorID)
}

func TestCreateDocumentRejectsInvalidData(t *testing.T) {
	s, db := newTestServer()
	userID := seedUser(db, "jane@example.com", "free")

	req := authedRequest(t, userID, http.MethodPost, "/documents", DocumentRequest{
		Kind:  "resume",
		Title: "Broken",
		Data:  json.RawMessage(`{"unknownField": true}`),
	})
	rec := httptest.NewRecorder()
	s.handleCreateDocument(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateDocumentGatesPremiumTemplates(t *testing.T) {
	s, db := newTestServer()
	freeUser := seedUser(db, "free@example.com", "free")
	proUser := seedUser(db, "pro@example.com", "pro")

	premium := DocumentRequest{
		Kind:       "resume",
		Title:      "Fancy",
		TemplateID: "minimal",
		Data:       json.RawMessage(minimalResumeJSON),
	}

	req := authedRequest(t, freeUser, http.MethodPost, "/documents", premium)
	rec := httptest.NewRecorder()
	s.handleCreateDocument(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "pro tier")

	req = authedRequest(t, proUser, http.MethodPost, "/documents", premium)
	rec = httptest.NewRecorder()
	s.handleCreateDocument(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateDocumentToleratesStaleTemplateID(t *testing.T) {
	s, db := newTestServer()
	userID := seedUser(db, "jane@example.com", "free")

	doc := createTestDocument(t, s, userID, DocumentRequest{
		Kind:       "resume",
		Title:      "Old Styles",
		TemplateID: "retired-template",
		Data:       json.RawMessage(minimalResumeJSON),
	})

	// The stale id is saved as-is; rendering falls back to the default.
	assert.Equal(t, "retired-template", doc.TemplateID)
}

func TestGetDocument(t *testing.T) {
	s, db := newTestServer()
	userID := seedUser(db, "jane@example.com", "free")
	doc := createTestDocument(t, s, userID, DocumentRequest{
		Kind: "resume", Title: "Mine", Data: json.RawMessage(minimalResumeJSON),
	})

	req := authedRequest(t, userID, http.MethodGet, "/documents/"+doc.ID.String(), nil)
	req.SetPathValue("id", doc.ID.String())
	rec := httptest.NewRecorder()
	s.handleGetDocument(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got store.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "Mine", got.Title)
}

func TestGetDocumentOwnership(t *testing.T) {
	s, db := newTestServer()
	owner := seedUser(db, "owner@example.com", "free")
	other := seedUser(db, "other@example.com", "free")
	doc := createTestDocument(t, s, owner, DocumentRequest{
		Kind: "resume", Title: "Private", Data: json.RawMessage(minimalResumeJSON),
	})

	req := authedRequest(t, other, http.MethodGet, "/documents/"+doc.ID.String(), nil)
	req.SetPathValue("id", doc.ID.String())
	rec := httptest.NewRecorder()
	s.handleGetDocument(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	missing := uuid.New()
	req = authedRequest(t, owner, http.MethodGet, "/documents/"+missing.String(), nil)
	req.SetPathValue("id", missing.String())
	rec = httptest.NewRecorder()
	s.handleGetDocument(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDocumentRejectsInvalidID(t *testing.T) {
	s, db := newTestServer()
	userID := seedUser(db, "jane@example.com", "free")

	req := authedRequest(t, userID, http.MethodGet, "/documents/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()
	s.handleGetDocument(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid document id")
}

func TestUpdateDocument(t *testing.T) {
	s, db := newTestServer()
	userID := seedUser(db, "jane@example.com", "free")
	doc := createTestDocument(t, s, userID, DocumentRequest{
		Kind: "resume", Title: "Draft", TemplateID: "clean", Data: json.RawMessage(minimalResumeJSON),
	})

	req := authedRequest(t, userID, http.MethodPut, "/documents/"+doc.ID.String(), DocumentRequest{
		Kind:       "resume",
		Title:      "Final",
		TemplateID: "modern",
		ColorID:    "emerald",
		Data:       json.RawMessage(minimalResumeJSON),
	})
	req.SetPathValue("id", doc.ID.String())
	rec := httptest.NewRecorder()
	s.handleUpdateDocument(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got store.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, "modern", got.TemplateID)
	assert.Equal(t, "emerald", got.ColorID)
}

func TestDeleteDocument(t *testing.T) {
	s, db := newTestServer()
	userID := seedUser(db, "jane@example.com", "free")
	doc := createTestDocument(t, s, userID, DocumentRequest{
		Kind: "resume", Title: "Gone", Data: json.RawMessage(minimalResumeJSON),
	})

	req := authedRequest(t, userID, http.MethodDelete, "/documents/"+doc.ID.String(), nil)
	req.SetPathValue("id", doc.ID.String())
	rec := httptest.NewRecorder()
	s.handleDeleteDocument(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Deleting it again is a no-op.
	req = authedRequest(t, userID, http.MethodDelete, "/documents/"+doc.ID.String(), nil)
	req.SetPathValue("id", doc.ID.String())
	rec = httptest.NewRecorder()
	s.handleDeleteDocument(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteDocumentForbiddenForOtherOwner(t *testing.T) {
	s, db := newTestServer()
	owner := seedUser(db, "owner@example.com", "free")
	other := seedUser(db, "other@example.com", "free")
	doc := createTestDocument(t, s, owner, DocumentRequest{
		Kind: "resume", Title: "Keep", Data: json.RawMessage(minimalResumeJSON),
	})

	req := authedRequest(t, other, http.MethodDelete, "/documents/"+doc.ID.String(), nil)
	req.SetPathValue("id", doc.ID.String())
	rec := httptest.NewRecorder()
	s.handleDeleteDocument(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Still readable by its owner.
	req = authedRequest(t, owner, http.MethodGet, "/documents/"+doc.ID.String(), nil)
	req.SetPathValue("id", doc.ID.String())
	rec = httptest.NewRecorder()
	s.handleGetDocument(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListDocuments(t *testing.T) {
	s, db := newTestServer()
	userID := seedUser(db, "jane@example.com", "free")
	other := seedUser(db, "other@example.com", "free")

	createTestDocument(t, s, userID, DocumentRequest{
		Kind: "resume", Title: "First", Data: json.RawMessage(minimalResumeJSON),
	})
	createTestDocument(t, s, userID, DocumentRequest{
		Kind: "cover_letter", Title: "Second", Data: json.RawMessage(minimalCoverLetterJSON),
	})
	createTestDocument(t, s, other, DocumentRequest{
		Kind: "resume", Title: "Theirs", Data: json.RawMessage(minimalResumeJSON),
	})

	req := authedRequest(t, userID, http.MethodGet, "/documents", nil)
	rec := httptest.NewRecorder()
	s.handleListDocuments(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var docs []store.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	require.Len(t, docs, 2)
	// Newest first.
	assert.Equal(t, "Second", docs[0].Title)
	assert.Equal(t, "First", docs[1].Title)

	req = authedRequest(t, userID, http.MethodGet, "/documents?kind=resume", nil)
	rec = httptest.NewRecorder()
	s.handleListDocuments(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "First", docs[0].Title)
}

func TestListDocumentsRejectsUnknownKind(t *testing.T) {
	s, db := newTestServer()
	userID := seedUser(db, "jane@example.com", "free")

	req := authedRequest(t, userID, http.MethodGet, "/documents?kind=novel", nil)
	rec := httptest.NewRecorder()
	s.handleListDocuments(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown document kind")
}
