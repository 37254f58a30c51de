package restapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnsites/sitemap/internal/logging"
)

// logLines decodes each JSON record the logger wrote.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &record), line)
		out = append(out, record)
	}
	return out
}

func serveLogged(handler http.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewStructuredLogger(&buf, slog.LevelDebug)
	rec := httptest.NewRecorder()
	NewRequestLoggingMiddleware(logger)(handler).ServeHTTP(rec, req)
	return rec, &buf
}

func TestRequestLoggingRecord(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/map.json?key=secret&region=North", nil)
	req.Header.Set("User-Agent", "field-tablet/2.1")

	rec, buf := serveLogged(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	records := logLines(t, buf)
	require.Len(t, records, 1)
	record := records[0]
	assert.Equal(t, "http_request", record["msg"])
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "GET", record["method"])
	assert.Equal(t, "/api/map.json", record["path"])
	assert.EqualValues(t, 200, record["status"])
	assert.EqualValues(t, len(`{"ok":true}`), record["bytes"])
	assert.Equal(t, "field-tablet/2.1", record["user_agent"])
	assert.Equal(t, "http_server", record["component"])
	assert.Contains(t, record, "duration_ms")
	assert.NotContains(t, buf.String(), "secret")
	assert.NotContains(t, buf.String(), "region=North")
}

func TestRequestLoggingStatus(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status float64
		level  string
	}{
		{"implicit ok", func(w http.ResponseWriter) {}, 200, "INFO"},
		{"not found", func(w http.ResponseWriter) { w.WriteHeader(http.StatusNotFound) }, 404, "WARN"},
		{"first header wins", func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusInternalServerError)
			w.WriteHeader(http.StatusOK)
		}, 500, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, buf := serveLogged(func(w http.ResponseWriter, r *http.Request) {
				tt.write(w)
			}, httptest.NewRequest(http.MethodGet, "/api/filters.json", nil))

			records := logLines(t, buf)
			require.Len(t, records, 1)
			assert.Equal(t, tt.status, records[0]["status"])
			assert.Equal(t, tt.level, records[0]["level"])
		})
	}
}

func TestRequestLoggingRequestID(t *testing.T) {
	t.Run("generated when absent", func(t *testing.T) {
		rec, buf := serveLogged(func(w http.ResponseWriter, r *http.Request) {
			logging.FromContext(r.Context()).Debug("building view")
		}, httptest.NewRequest(http.MethodGet, "/api/map.json", nil))

		id := rec.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)

		records := logLines(t, buf)
		require.Len(t, records, 2)
		assert.Equal(t, "building view", records[0]["msg"])
		for _, record := range records {
			assert.Equal(t, id, record["request_id"])
		}
	})

	t.Run("propagated from the client", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/map.json", nil)
		req.Header.Set(RequestIDHeader, "sync-job-42")

		rec, buf := serveLogged(func(w http.ResponseWriter, r *http.Request) {}, req)

		assert.Equal(t, "sync-job-42", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "sync-job-42", logLines(t, buf)[0]["request_id"])
	})

	t.Run("oversized client ids are replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/map.json", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 65))

		rec, _ := serveLogged(func(w http.ResponseWriter, r *http.Request) {}, req)
		assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
	})
}

func TestRequestLoggingThroughAPI(t *testing.T) {
	api := createTestApi(t)

	var buf bytes.Buffer
	handler := createHandlerWithRequestLogging(api, logging.NewStructuredLogger(&buf, slog.LevelInfo))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/current-time.json?key=TEST", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/current-time.json", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	records := logLines(t, &buf)
	require.Len(t, records, 2)
	assert.EqualValues(t, 200, records[0]["status"])
	assert.EqualValues(t, 401, records[1]["status"])
	assert.Equal(t, "WARN", records[1]["level"])
	for _, record := range records {
		assert.Equal(t, "/api/current-time.json", record["path"])
	}
}
