package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tanukidns/server"
	"tanukidns/stats"
	"tanukidns/web"
	"tanukidns/zone"
)

func newTestHandler(t *testing.T) (http.Handler, *zone.Store) {
	t.Helper()

	store, err := zone.OpenStore(t.TempDir())
	require.NoError(t, err)

	table, err := zone.NewTable(nil)
	require.NoError(t, err)

	st := stats.New()
	dnsServer := server.New(0, table, st)
	webServer := web.New(0, st, store, dnsServer)
	return webServer.Handler(), store
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)

	w := doRequest(h, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tanukidns")
}

func TestStatsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	w := doRequest(h, http.MethodGet, "/api/stats", "")

	require.Equal(t, http.StatusOK, w.Code)
	var snap stats.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, int64(0), snap.TotalQueries)
}

func TestRecordLifecycle(t *testing.T) {
	h, _ := newTestHandler(t)

	// Empty to start
	w := doRequest(h, http.MethodGet, "/api/records", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	// Create
	w = doRequest(h, http.MethodPut, "/api/records", `{"name":"foo.local","address":"10.0.0.5"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Listed
	w = doRequest(h, http.MethodGet, "/api/records", "")
	require.Equal(t, http.StatusOK, w.Code)
	var records []zone.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, zone.Record{Name: "foo.local", Address: "10.0.0.5"}, records[0])

	// Delete
	w = doRequest(h, http.MethodDelete, "/api/records/foo.local", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(h, http.MethodGet, "/api/records", "")
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestPutRecordValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "not-json"},
		{"missing name", `{"address":"10.0.0.5"}`},
		{"bad address", `{"name":"foo.local","address":"999.0.0.1"}`},
		{"ipv6 address", `{"name":"foo.local","address":"::1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(h, http.MethodPut, "/api/records", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestDeleteMissingRecord(t *testing.T) {
	h, _ := newTestHandler(t)

	w := doRequest(h, http.MethodDelete, "/api/records/nosuch.local", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
