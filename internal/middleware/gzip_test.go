package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsBody = `{"totalLinks":3,"totalClicks":10,"activeLinks":2}`

func jsonHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(statsBody))
	})
}

func TestGzipMiddleware(t *testing.T) {
	gzipHandler := GzipMiddleware(jsonHandler(http.StatusOK))

	req := httptest.NewRequest(http.MethodGet, "/api/system-stats", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rec := httptest.NewRecorder()

	gzipHandler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	reader, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	defer reader.Close()

	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, statsBody, string(body))
}

func TestGzipMiddleware_KeepsStatus(t *testing.T) {
	gzipHandler := GzipMiddleware(jsonHandler(http.StatusNotFound))

	req := httptest.NewRequest(http.MethodGet, "/api/stats/missing", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rec := httptest.NewRecorder()

	gzipHandler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestGzipMiddleware_NoGzip(t *testing.T) {
	gzipHandler := GzipMiddleware(jsonHandler(http.StatusOK))

	req := httptest.NewRequest(http.MethodGet, "/api/system-stats", nil)

	rec := httptest.NewRecorder()

	gzipHandler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, statsBody, rec.Body.String())
}

func TestGzipMiddleware_SkipsRedirects(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://example.com", http.StatusFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/abc123", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rec := httptest.NewRecorder()

	GzipMiddleware(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://example.com", rec.Header().Get("Location"))
}

func TestGzipReader(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})

	gzipHandler := GzipReader(handler)

	var buf bytes.Buffer
	gzWriter := gzip.NewWriter(&buf)
	_, err := gzWriter.Write([]byte(`{"url":"https://example.com"}`))
	require.NoError(t, err)
	gzWriter.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/shorten", &buf)
	req.Header.Set("Content-Encoding", "gzip")

	rec := httptest.NewRecorder()

	gzipHandler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"url":"https://example.com"}`, strings.TrimSpace(rec.Body.String()))
}

func TestGzipReader_BadPayload(t *testing.T) {
	gzipHandler := GzipReader(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/shorten", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")

	rec := httptest.NewRecorder()

	gzipHandler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
