// Command seed loads a class-record dump from disk into the configured store,
// for local development without reaching the remote catalog.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"coursecatalog/internal/app"
	"coursecatalog/internal/catalog"
	"coursecatalog/internal/config"
	"coursecatalog/internal/ingest"
	"coursecatalog/internal/platform/logger"
)

func main() {
	os.Exit(runCLI(os.Args[1:]))
}

func runCLI(args []string) int {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	var (
		file     = fs.String("file", "", "Path to a <termID>.json class-record dump")
		termID   = fs.String("term", "", "Term id the dump belongs to")
		termName = fs.String("name", "", "Human-readable term name")
	)
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		return 1
	}
	log := logger.Setup(cfg.Server.LogLevel, cfg.Server.LogFormat)

	if *file == "" || *termID == "" {
		log.Error("both -file and -term are required")
		return 1
	}

	ctx := context.Background()
	a, err := app.Wire(ctx, cfg, log)
	if err != nil {
		log.Error("wire app", "error", err)
		return 1
	}
	defer a.Close()

	f, err := os.Open(*file)
	if err != nil {
		log.Error("open dump", "error", err)
		return 1
	}
	defer f.Close()

	records, err := decodeRecords(f)
	if err != nil {
		log.Error("decode dump", "file", *file, "error", err)
		return 1
	}

	reconciler := ingest.NewReconciler(a.Store, ingest.ReconcilerConfig{
		ClearConcurrency: cfg.Reconcile.ClearConcurrency,
		Atomic:           cfg.Reconcile.Atomic,
	}, log)
	term := catalog.Term{ID: *termID, Name: *termName}
	report, dropped, err := seed(ctx, a.Store, reconciler, term, records)
	if dropped > 0 {
		log.Warn("dropped class records without subject", "file", *file, "dropped", dropped)
	}
	if err != nil {
		log.Error("seed failed", "term_id", term.ID, "error", err)
		return 1
	}
	log.Info("seed finished", "term_id", term.ID, "records", len(records), "written", report.Written, "cleared", report.Cleared)
	return 0
}

func decodeRecords(f *os.File) ([]catalog.ClassRecord, error) {
	var records []catalog.ClassRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func seed(ctx context.Context, store catalog.Store, reconciler *ingest.Reconciler, term catalog.Term, records []catalog.ClassRecord) (ingest.Report, int, error) {
	kept, dropped := catalog.KeyedRecords(records)
	report, err := reconciler.Reconcile(ctx, catalog.Aggregate(kept))
	if err != nil {
		return report, dropped, err
	}
	// The term record goes last so a failed seed does not mask the next real sync.
	if err := store.PutLatestTerm(ctx, catalog.TermRecord{LatestTermID: term.ID, LatestTermName: term.Name}); err != nil {
		return report, dropped, fmt.Errorf("put latest term: %w", err)
	}
	return report, dropped, nil
}
