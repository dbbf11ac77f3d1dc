package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"coursecatalog/internal/catalog"
)

// ErrSyncInProgress is returned when a sync is already running in this
// process.
var ErrSyncInProgress = errors.New("catalog sync already in progress")

type RunOptions struct {
	// Force re-syncs the latest term even when the stored term record
	// already matches it.
	Force bool
}

// Result describes a sync that did not fail outright. Status is
// StatusNoUpdate, StatusSynced or StatusPartial.
type Result struct {
	RunID        string
	Status       Status
	Term         catalog.Term
	RecordCount  int
	SubjectCount int
	Written      int
	Failures     []catalog.SubjectFailure
}

type Service struct {
	resolver   *Resolver
	fetcher    *Fetcher
	reconciler *Reconciler
	runs       Repository
	logger     *slog.Logger

	running sync.Mutex
}

func NewService(resolver *Resolver, fetcher *Fetcher, reconciler *Reconciler, runs Repository, logger *slog.Logger) *Service {
	return &Service{
		resolver:   resolver,
		fetcher:    fetcher,
		reconciler: reconciler,
		runs:       runs,
		logger:     logger.With("component", "catalog_sync"),
	}
}

// SyncCatalog runs the pipeline and reports true only when a new term was
// fully synced. "Already up to date" and every failure both yield false;
// use Run to tell them apart. An up-to-date run writes no catalog
// documents; its run record is still created and finished.
func (s *Service) SyncCatalog(ctx context.Context) bool {
	res, err := s.Run(ctx, RunOptions{})
	return err == nil && res.Status == StatusSynced
}

// Run executes resolve, fetch, aggregate and reconcile in order. Any stage
// error aborts the remaining stages. A partial reconciliation returns a
// StatusPartial result together with a *catalog.PartialFailure.
func (s *Service) Run(ctx context.Context, opts RunOptions) (res Result, err error) {
	if !s.running.TryLock() {
		return Result{}, ErrSyncInProgress
	}
	defer s.running.Unlock()

	run := &Run{
		ID:        uuid.NewString(),
		Status:    StatusRunning,
		Forced:    opts.Force,
		StartedAt: time.Now(),
	}
	if err := s.runs.CreateRun(ctx, run); err != nil {
		return Result{}, fmt.Errorf("record sync run: %w", err)
	}
	log := s.logger.With("run_id", run.ID)
	res.RunID = run.ID

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		run.TermID, run.TermName = res.Term.ID, res.Term.Name
		run.RecordsFetched = res.RecordCount
		run.SubjectsWritten = res.Written
		for _, f := range res.Failures {
			run.SubjectsFailed = append(run.SubjectsFailed, f.Subject)
		}
		switch {
		case res.Status == StatusPartial:
			run.Status = StatusPartial
			run.Error = err.Error()
		case err != nil:
			run.Status = StatusFailed
			run.Error = err.Error()
			log.Error("catalog sync failed", "term_id", res.Term.ID, "error", err)
		default:
			run.Status = res.Status
		}
		if updateErr := s.runs.UpdateRun(context.WithoutCancel(ctx), run); updateErr != nil {
			log.Error("failed to update sync run", "error", updateErr)
		}
	}()

	resolution, err := s.resolver.Resolve(ctx)
	if err != nil {
		return res, fmt.Errorf("resolve latest term: %w", err)
	}
	res.Term = resolution.Term
	log = log.With("term_id", res.Term.ID)

	if resolution.Outcome == OutcomeNoUpdate && !opts.Force {
		log.Info("catalog already up to date")
		res.Status = StatusNoUpdate
		return res, nil
	}

	records, err := s.fetcher.Fetch(ctx, res.Term.ID)
	if err != nil {
		return res, fmt.Errorf("fetch catalog for term %s: %w", res.Term.ID, err)
	}
	res.RecordCount = len(records)

	idx := catalog.Aggregate(records)
	res.SubjectCount = idx.Len()
	log.Info("aggregated class records", "records", res.RecordCount, "subjects", res.SubjectCount)

	report, err := s.reconciler.Reconcile(ctx, idx)
	res.Written = report.Written
	res.Failures = report.Failures
	if err != nil {
		var partial *catalog.PartialFailure
		if errors.As(err, &partial) {
			res.Status = StatusPartial
			log.Error("catalog sync partially failed",
				"written", res.Written,
				"failed_subjects", partial.Subjects())
		}
		return res, fmt.Errorf("reconcile term %s: %w", res.Term.ID, err)
	}

	res.Status = StatusSynced
	log.Info("catalog sync completed",
		"term_name", res.Term.Name,
		"subjects", res.SubjectCount,
		"written", res.Written,
		"atomic", report.Atomic)
	return res, nil
}
