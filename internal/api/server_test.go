package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogsmith/internal/adapters/config"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0}, nil)
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleIndex(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Generate Blog Post")
}

func TestHandleGenerate_InvalidBody(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader("not json"))
	s.handleGenerate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRunResult_UnknownRun(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/runs/nope", nil)
	req.SetPathValue("run_id", "nope")
	s.handleRunResult(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
