package ingest

import (
	"context"
	"errors"
	"log/slog"

	"coursecatalog/internal/catalog"
)

type CatalogSource interface {
	GetClassRecords(ctx context.Context, termID string) ([]catalog.ClassRecord, error)
}

type Fetcher struct {
	source CatalogSource
	logger *slog.Logger
}

func NewFetcher(source CatalogSource, logger *slog.Logger) *Fetcher {
	return &Fetcher{source: source, logger: logger.With("component", "catalog_fetcher")}
}

// Fetch downloads every class record for termID. Records without a subject
// code cannot be keyed to a document and are dropped.
func (f *Fetcher) Fetch(ctx context.Context, termID string) ([]catalog.ClassRecord, error) {
	if termID == "" {
		return nil, &catalog.MalformedDataError{Source: "class feed", Err: errors.New("empty term id")}
	}

	records, err := f.source.GetClassRecords(ctx, termID)
	if err != nil {
		return nil, err
	}

	kept, dropped := catalog.KeyedRecords(records)
	if dropped > 0 {
		f.logger.Warn("dropped class records without subject", "term_id", termID, "dropped", dropped)
	}

	f.logger.Info("fetched class records", "term_id", termID, "records", len(kept))
	return kept, nil
}
