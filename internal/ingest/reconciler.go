package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"coursecatalog/internal/catalog"
)

const defaultClearConcurrency = 16

type ReconcilerConfig struct {
	// ClearConcurrency bounds in-flight writes during the clear phase.
	ClearConcurrency int
	// Atomic delegates to the store's ReplaceAll when it has one.
	Atomic bool
}

// Report summarizes one reconciliation pass.
type Report struct {
	Atomic   bool
	Cleared  int
	Written  int
	Failures []catalog.SubjectFailure
}

type Reconciler struct {
	store  catalog.Store
	cfg    ReconcilerConfig
	logger *slog.Logger
}

func NewReconciler(store catalog.Store, cfg ReconcilerConfig, logger *slog.Logger) *Reconciler {
	if cfg.ClearConcurrency <= 0 {
		cfg.ClearConcurrency = defaultClearConcurrency
	}
	return &Reconciler{store: store, cfg: cfg, logger: logger.With("component", "catalog_reconciler")}
}

// Reconcile makes the stored subject catalogs match idx. Every stored
// subject is first emptied, then each subject in idx is overwritten. The
// two phases are not atomic: a failed or interrupted pass can leave some
// subjects emptied and others holding old data, and rerunning converges.
//
// Individual document failures do not stop the pass; they are returned as
// a *catalog.PartialFailure together with the report.
func (r *Reconciler) Reconcile(ctx context.Context, idx *catalog.Index) (Report, error) {
	if r.cfg.Atomic {
		if replacer, ok := r.store.(catalog.AtomicReplacer); ok {
			return r.replaceAll(ctx, replacer, idx)
		}
		r.logger.Warn("store has no atomic replace, using two-phase reconcile")
	}

	stored, err := r.store.ListSubjects(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list stored subjects: %w", err)
	}

	var report Report
	clearFailures := r.clear(ctx, stored, &report)
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("reconcile clear phase: %w", err)
	}

	var writeFailures []catalog.SubjectFailure
	for _, sc := range idx.Catalogs() {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("reconcile write phase: %w", err)
		}
		if err := r.store.PutSubject(ctx, sc); err != nil {
			// A write cut short by cancellation is not a subject failure.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, fmt.Errorf("reconcile write phase: %w", ctxErr)
			}
			r.logger.Error("subject write failed", "subject", sc.Subject, "error", err)
			writeFailures = append(writeFailures, catalog.SubjectFailure{
				Subject: sc.Subject,
				Phase:   catalog.PhaseWrite,
				Err:     &catalog.StoreWriteError{Doc: catalog.CourseDataDoc(sc.Subject), Err: err},
			})
			continue
		}
		report.Written++
	}

	// A subject that is rewritten supersedes its clear outcome.
	for _, f := range clearFailures {
		if !idx.Has(f.Subject) {
			report.Failures = append(report.Failures, f)
		}
	}
	report.Failures = append(report.Failures, writeFailures...)

	r.logger.Info("reconciled course data",
		"stored_subjects", len(stored),
		"cleared", report.Cleared,
		"written", report.Written,
		"failed", len(report.Failures))

	if len(report.Failures) > 0 {
		return report, &catalog.PartialFailure{Failures: report.Failures, Written: report.Written}
	}
	return report, nil
}

// clear empties every stored subject with bounded concurrency and waits
// for all writes to finish before returning.
func (r *Reconciler) clear(ctx context.Context, subjects []string, report *Report) []catalog.SubjectFailure {
	var (
		mu       sync.Mutex
		failures []catalog.SubjectFailure
		g        errgroup.Group
	)
	g.SetLimit(r.cfg.ClearConcurrency)

	for _, subject := range subjects {
		g.Go(func() error {
			err := r.store.PutSubject(ctx, catalog.SubjectCatalog{Subject: subject, Numbers: []string{}})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, catalog.SubjectFailure{
					Subject: subject,
					Phase:   catalog.PhaseClear,
					Err:     &catalog.StoreWriteError{Doc: catalog.CourseDataDoc(subject), Err: err},
				})
				return nil
			}
			report.Cleared++
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(failures, func(a, b catalog.SubjectFailure) int {
		return strings.Compare(a.Subject, b.Subject)
	})
	for _, f := range failures {
		r.logger.Warn("subject clear failed", "subject", f.Subject, "error", f.Err)
	}
	return failures
}

func (r *Reconciler) replaceAll(ctx context.Context, replacer catalog.AtomicReplacer, idx *catalog.Index) (Report, error) {
	report := Report{Atomic: true}
	if err := replacer.ReplaceAll(ctx, idx); err != nil {
		return report, &catalog.StoreWriteError{Doc: catalog.CourseDataCollection + "/*", Err: err}
	}
	report.Written = idx.Len()
	r.logger.Info("replaced course data atomically", "written", report.Written)
	return report, nil
}
