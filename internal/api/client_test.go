package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supersim-ai/drivesim/pkg/core"
)

func writeExport(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew(t *testing.T) {
	c := New("http://localhost:5000/", "k1")
	assert.Equal(t, "http://localhost:5000", c.server)
	assert.Equal(t, "k1", c.key)
	require.NotNil(t, c.http)
	assert.Equal(t, requestTimeout, c.http.Timeout)
}

func TestHealthcheck(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"ok", http.StatusOK, false},
		{"no content", http.StatusNoContent, false},
		{"unavailable", http.StatusServiceUnavailable, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, healthPath, r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := New(srv.URL, "").Healthcheck(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHealthcheck_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	assert.Error(t, New(url, "").Healthcheck(context.Background()))
}

func TestUpload(t *testing.T) {
	var (
		auth   string
		fields = map[string]string{}
		name   string
		body   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, drivesPath, r.URL.Path)
		auth = r.Header.Get("Authorization")

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		name = hdr.Filename
		body, _ = io.ReadAll(f)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	path := writeExport(t, "tigers_20260301_120000_d1.json.gz", "frames")
	meta := core.UploadMetadata{DriveID: "d1", Team: "tigers", Outcome: core.Win, Ending: core.Touchdown, XP: 120, Plays: 7}
	require.NoError(t, New(srv.URL, "k1").Upload(context.Background(), path, meta))

	assert.Equal(t, "Bearer k1", auth)
	assert.Equal(t, map[string]string{"driveId": "d1", "team": "tigers", "outcome": "win", "xp": "120"}, fields)
	assert.Equal(t, "tigers_20260301_120000_d1.json.gz", name)
	assert.Equal(t, "frames", string(body))
}

func TestUpload_NoKeyNoAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.Copy(io.Discard, r.Body)
	}))
	defer srv.Close()

	path := writeExport(t, "d.json.gz", "x")
	assert.NoError(t, New(srv.URL, "").Upload(context.Background(), path, core.UploadMetadata{DriveID: "d"}))
}

func TestUpload_MissingExport(t *testing.T) {
	err := New("http://localhost:5000", "k").Upload(context.Background(), "/nonexistent/d.json.gz", core.UploadMetadata{})
	assert.ErrorContains(t, err, "opening export")
}

func TestUpload_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	path := writeExport(t, "d.json.gz", "x")
	err := New(srv.URL, "wrong").Upload(context.Background(), path, core.UploadMetadata{DriveID: "d9"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "d9")
	assert.Contains(t, err.Error(), "403")
}

func TestUpload_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := writeExport(t, "d.json.gz", "x")
	assert.Error(t, New(srv.URL, "k").Upload(ctx, path, core.UploadMetadata{}))
}
