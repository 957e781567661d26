package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterCreatesAccount(t *testing.T) {
	s, _ := newTestServer()

	rec := postJSON(t, s.authHandler.Register, "/auth/register", RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "supersecret",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, "free", resp.User.Tier)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	s, _ := newTestServer()

	req := RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "supersecret"}
	rec := postJSON(t, s.authHandler.Register, "/auth/register", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, s.authHandler.Register, "/auth/register", req)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already registered")
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	s, _ := newTestServer()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing name", RegisterRequest{Email: "x@example.com", Password: "supersecret"}},
		{"bad email", RegisterRequest{Name: "X", Email: "not-an-email", Password: "supersecret"}},
		{"short password", RegisterRequest{Name: "X", Email: "x@example.com", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, s.authHandler.Register, "/auth/register", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "validation error")
		})
	}
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.authHandler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	s, _ := newTestServer()

	rec := postJSON(t, s.authHandler.Register, "/auth/register", RegisterRequest{
		Name: "Jane", Email: "jane@example.com", Password: "supersecret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, s.authHandler.Login, "/auth/login", LoginRequest{
		Email: "jane@example.com", Password: "supersecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	claims, err := s.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s, _ := newTestServer()

	rec := postJSON(t, s.authHandler.Register, "/auth/register", RegisterRequest{
		Name: "Jane", Email: "jane@example.com", Password: "supersecret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, s.authHandler.Login, "/auth/login", LoginRequest{
		Email: "jane@example.com", Password: "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")
}

func TestGetAccountIncludesTierWindow(t *testing.T) {
	s, db := newTestServer()
	userID := seedUser(db, "jane@example.com", "free")

	req := authedRequest(t, userID, http.MethodGet, "/account", nil)
	rec := httptest.NewRecorder()
	s.handleGetAccount(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var account UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, "free", account.Tier)
	assert.Nil(t, account.TierRenewAt)

	now := time.Now()
	require.NoError(t, db.SetUserTier(req.Context(), userID, "pro", now, now.AddDate(0, 1, 0)))

	rec = httptest.NewRecorder()
	s.handleGetAccount(rec, authedRequest(t, userID, http.MethodGet, "/account", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, "pro", account.Tier)
	require.NotNil(t, account.TierRenewAt)
	assert.True(t, account.TierRenewAt.After(now))
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	s, _ := newTestServer()

	rec := postJSON(t, s.authHandler.Login, "/auth/login", LoginRequest{
		Email: "nobody@example.com", Password: "supersecret",
	})

	// Same generic error as a wrong password.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")
}
