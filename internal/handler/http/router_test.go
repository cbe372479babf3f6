package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveUploads(t *testing.T, baseURL string) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.txt"), []byte("hello"), 0644))

	r := chi.NewRouter()
	fileServer(r, baseURL, http.Dir(dir))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestFileServer(t *testing.T) {
	t.Run("path-shaped base", func(t *testing.T) {
		srv := serveUploads(t, "/uploads")

		resp, err := http.Get(srv.URL + "/uploads/report.txt")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(body))
	})

	t.Run("absolute base URL mounts its path component", func(t *testing.T) {
		srv := serveUploads(t, "http://localhost:8080/uploads")

		resp, err := http.Get(srv.URL + "/uploads/report.txt")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
