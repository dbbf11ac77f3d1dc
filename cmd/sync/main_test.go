package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coursecatalog/internal/catalog"
	"coursecatalog/internal/config"
	"coursecatalog/internal/ingest"

	"github.com/stretchr/testify/assert"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExitCode(t *testing.T) {
	partial := &catalog.PartialFailure{
		Failures: []catalog.SubjectFailure{{Subject: "MATH", Phase: catalog.PhaseWrite, Err: errors.New("boom")}},
		Written:  3,
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"synced", nil, exitOK},
		{"partial", partial, exitPartial},
		{"wrapped partial", errors.Join(errors.New("reconcile term 4960"), partial), exitPartial},
		{"failed", &catalog.FetchError{URL: "x", StatusCode: 500}, exitFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(discard(), ingest.Result{}, tt.err))
		})
	}
}

func TestRun_AgainstFakeSource(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/data", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"latest":"4960","terms":{"4960":{"name":"2024 Fall"}}}`)
	})
	mux.HandleFunc("/cdn/4960.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"u":"COMP_SCI","n":"111-0"},{"u":"MATH","n":"220-1"}]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := &config.Config{
		Store: config.StoreConfig{Driver: config.DriverMemory},
		Source: config.SourceConfig{
			TermURL:    srv.URL + "/data",
			CatalogURL: srv.URL + "/cdn",
			Timeout:    time.Second,
		},
		Reconcile: config.ReconcileConfig{ClearConcurrency: 2},
	}

	assert.Equal(t, exitOK, run(context.Background(), cfg, discard(), false))
}

func TestRun_SourceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := &config.Config{
		Store: config.StoreConfig{Driver: config.DriverMemory},
		Source: config.SourceConfig{
			TermURL:    srv.URL + "/data",
			CatalogURL: srv.URL + "/cdn",
			Timeout:    time.Second,
		},
		Reconcile: config.ReconcileConfig{ClearConcurrency: 2},
	}

	assert.Equal(t, exitFailed, run(context.Background(), cfg, discard(), false))
}

func TestRunCLI(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/data", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"latest":"4960","terms":{"4960":{"name":"2024 Fall"}}}`)
	})
	mux.HandleFunc("/cdn/4960.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"u":"COMP_SCI","n":"111-0"}]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("TERM_API_URL", srv.URL+"/data")
	t.Setenv("CATALOG_CDN_URL", srv.URL+"/cdn")
	t.Setenv("LOG_LEVEL", "error")

	assert.Equal(t, exitOK, runCLI([]string{"-force", "-timeout", "5s"}))
	assert.Equal(t, exitFailed, runCLI([]string{"-bogus"}))
}
