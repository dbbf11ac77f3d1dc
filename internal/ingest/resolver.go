package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"coursecatalog/internal/catalog"
	"coursecatalog/internal/platform/paperdata"
)

type TermSource interface {
	GetTermDirectory(ctx context.Context) (*paperdata.TermDirectory, error)
}

// Outcome says whether resolving the latest term changed the stored record.
type Outcome int

const (
	OutcomeNoUpdate Outcome = iota + 1
	OutcomeUpdated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoUpdate:
		return "no_update"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Resolution is the result of a successful Resolve. Term is the latest term
// published by the directory regardless of Outcome.
type Resolution struct {
	Outcome Outcome
	Term    catalog.Term
}

type Resolver struct {
	source TermSource
	store  catalog.Store
	logger *slog.Logger
}

func NewResolver(source TermSource, store catalog.Store, logger *slog.Logger) *Resolver {
	return &Resolver{source: source, store: store, logger: logger.With("component", "term_resolver")}
}

// Resolve fetches the term directory and compares its latest term with the
// stored record, overwriting the record when it differs. It performs at
// most one store write.
func (r *Resolver) Resolve(ctx context.Context) (Resolution, error) {
	dir, err := r.source.GetTermDirectory(ctx)
	if err != nil {
		return Resolution{}, err
	}
	term, err := dir.LatestTerm()
	if err != nil {
		return Resolution{}, err
	}

	stored, err := r.store.GetLatestTerm(ctx)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		r.logger.Info("no stored term record", "term_id", term.ID)
	case err != nil:
		return Resolution{}, fmt.Errorf("read %s: %w", catalog.LatestTermDoc, err)
	case stored.LatestTermID == term.ID:
		r.logger.Debug("latest term unchanged", "term_id", term.ID)
		return Resolution{Outcome: OutcomeNoUpdate, Term: term}, nil
	}

	rec := catalog.TermRecord{LatestTermID: term.ID, LatestTermName: term.Name}
	if err := r.store.PutLatestTerm(ctx, rec); err != nil {
		return Resolution{}, &catalog.StoreWriteError{Doc: catalog.LatestTermDoc, Err: err}
	}

	r.logger.Info("latest term updated",
		"previous_term_id", stored.LatestTermID,
		"term_id", term.ID,
		"term_name", term.Name)
	return Resolution{Outcome: OutcomeUpdated, Term: term}, nil
}
