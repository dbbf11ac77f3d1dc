package ingest

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	CreateRun(ctx context.Context, run *Run) error
	UpdateRun(ctx context.Context, run *Run) error
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

var _ Repository = (*PostgresRepo)(nil)

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) CreateRun(ctx context.Context, run *Run) error {
	const sql = `
		INSERT INTO sync_runs (id, started_at, status, forced)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, sql, run.ID, run.StartedAt, string(run.Status), run.Forced)
	return err
}

func (r *PostgresRepo) UpdateRun(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE sync_runs SET
			finished_at = $1,
			status = $2,
			term_id = $3,
			term_name = $4,
			records_fetched = $5,
			subjects_written = $6,
			subjects_failed = $7,
			error = $8
		WHERE id = $9`

	failed := run.SubjectsFailed
	if failed == nil {
		failed = []string{}
	}
	_, err := r.db.Exec(ctx, sql, run.FinishedAt, string(run.Status), run.TermID, run.TermName,
		run.RecordsFetched, run.SubjectsWritten, failed, run.Error, run.ID)
	return err
}

// LogRepo records runs in the log for stores without a runs table.
type LogRepo struct {
	logger *slog.Logger
}

var _ Repository = (*LogRepo)(nil)

func NewLogRepo(logger *slog.Logger) *LogRepo {
	return &LogRepo{logger: logger.With("component", "sync_runs")}
}

func (r *LogRepo) CreateRun(_ context.Context, run *Run) error {
	r.logger.Info("sync run started", "run_id", run.ID, "forced", run.Forced)
	return nil
}

func (r *LogRepo) UpdateRun(_ context.Context, run *Run) error {
	attrs := []any{
		"run_id", run.ID,
		"status", run.Status,
		"term_id", run.TermID,
		"records_fetched", run.RecordsFetched,
		"subjects_written", run.SubjectsWritten,
	}
	if len(run.SubjectsFailed) > 0 {
		attrs = append(attrs, "subjects_failed", run.SubjectsFailed)
	}
	if run.FinishedAt != nil {
		attrs = append(attrs, "duration_ms", run.FinishedAt.Sub(run.StartedAt).Milliseconds())
	}
	r.logger.Info("sync run finished", attrs...)
	return nil
}
