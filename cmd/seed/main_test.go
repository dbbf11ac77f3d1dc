package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"coursecatalog/internal/catalog"
	"coursecatalog/internal/ingest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "4960.json")
	require.NoError(t, os.WriteFile(dump, []byte(`[
		{"u":"COMP_SCI","n":"111-0"},
		{"u":"COMP_SCI","n":"211-0"},
		{"u":"MATH","n":"220-1"},
		{"u":"","n":"999-0"}
	]`), 0o644))

	f, err := os.Open(dump)
	require.NoError(t, err)
	defer f.Close()
	records, err := decodeRecords(f)
	require.NoError(t, err)

	ctx := context.Background()
	store := catalog.NewMemoryRepo()
	require.NoError(t, store.PutSubject(ctx, catalog.SubjectCatalog{Subject: "OLD", Numbers: []string{"1"}}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reconciler := ingest.NewReconciler(store, ingest.ReconcilerConfig{ClearConcurrency: 2}, logger)

	report, dropped, err := seed(ctx, store, reconciler, catalog.Term{ID: "4960", Name: "2024 Fall"}, records)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Written)
	assert.Equal(t, 1, dropped)

	subjects, err := store.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"COMP_SCI", "MATH", "OLD"}, subjects)

	term, err := store.GetLatestTerm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "4960", term.LatestTermID)

	cs, err := store.GetSubject(ctx, "COMP_SCI")
	require.NoError(t, err)
	assert.Equal(t, []string{"111-0", "211-0"}, cs.Numbers)

	old, err := store.GetSubject(ctx, "OLD")
	require.NoError(t, err)
	assert.Empty(t, old.Numbers)
}

func TestRunCLI(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")

	dump := filepath.Join(t.TempDir(), "4960.json")
	require.NoError(t, os.WriteFile(dump, []byte(`[{"u":"MATH","n":"220-1"}]`), 0o644))

	assert.Equal(t, 1, runCLI([]string{"-file", dump}))
	assert.Equal(t, 1, runCLI([]string{"-file", filepath.Join(t.TempDir(), "missing.json"), "-term", "4960"}))
	assert.Equal(t, 0, runCLI([]string{"-file", dump, "-term", "4960", "-name", "2024 Fall"}))
}
