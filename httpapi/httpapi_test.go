package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boltzmannbrain/bb"
	"github.com/boltzmannbrain/bb/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c := bb.New(config.Default())
	t.Cleanup(func() { _ = c.Close() })
	return New(c)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompileEndpointSuccess(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(compileRequest{Grammar: "M = Leaf | Unary M @1 | Binary M M @1\n"})
	req := httptest.NewRequest(http.MethodPost, "/compile", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp compileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Source, "package Main")
}

func TestCompileEndpointEmptyGrammar(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(compileRequest{Grammar: "   "})
	req := httptest.NewRequest(http.MethodPost, "/compile", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompileEndpointMalformedJSON(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/compile", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompileEndpointNoAtomsSystemIs400(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(compileRequest{Grammar: "M = Unary M @1\n"})
	req := httptest.NewRequest(http.MethodPost, "/compile", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, resp.Error)
}
