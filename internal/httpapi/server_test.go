package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/clockr/internal/models"
	"github.com/balkashynov/clockr/internal/store"
)

type fakeSource map[string]*models.Export

func (f fakeSource) GetExport(_ context.Context, id string) (*models.Export, error) {
	if id == "broken" {
		return nil, errors.New("disk on fire")
	}
	export, ok := f[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return export, nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	src := fakeSource{
		"abc": {ID: "abc", Filename: "time-tracking-export-2025-04-16.csv", Content: []byte("Name\nx\n")},
	}
	srv := httptest.NewServer(NewRouter(src))
	t.Cleanup(srv.Close)
	return srv
}

func TestExportDownload(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/exports/abc")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="time-tracking-export-2025-04-16.csv"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "Name\nx\n", string(body))
}

func TestExportNotFound(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/exports/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportBackendError(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/exports/broken")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/exports/abc")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `clockr_export_downloads_total{result="ok"}`)
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler()) }()

	cancel()
	assert.NoError(t, <-done)
}
