package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/catalog"
)

func TestListTemplates(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/catalog/templates", nil)
	rec := httptest.NewRecorder()
	s.handleListTemplates(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var templates []catalog.Template
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &templates))
	// Both kinds together.
	assert.Len(t, templates, 8)
}

func TestListTemplatesFilteredByKind(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/catalog/templates?kind=cover_letter", nil)
	rec := httptest.NewRecorder()
	s.handleListTemplates(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var templates []catalog.Template
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &templates))
	require.Len(t, templates, 3)
	for _, tmpl := range templates {
		assert.Equal(t, catalog.KindCoverLetter, tmpl.Kind)
	}
}

func TestListTemplatesRejectsUnknownKind(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/catalog/templates?kind=poster", nil)
	rec := httptest.NewRecorder()
	s.handleListTemplates(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListColors(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/catalog/colors", nil)
	rec := httptest.NewRecorder()
	s.handleListColors(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var colors []catalog.Color
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &colors))
	require.NotEmpty(t, colors)

	ids := make(map[string]string)
	for _, c := range colors {
		ids[c.ID] = c.Hex
	}
	assert.Equal(t, "#475569", ids["slate"])
	assert.Equal(t, "#2563eb", ids["blue"])
}
