package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

var (
	_ Store          = (*PostgresRepo)(nil)
	_ AtomicReplacer = (*PostgresRepo)(nil)
)

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) GetLatestTerm(ctx context.Context) (TermRecord, error) {
	const query = `
		SELECT latest_term_id, latest_term_name, updated_at
		FROM catalog_latest_term
		WHERE id = 1`

	var rec TermRecord
	err := r.db.QueryRow(ctx, query).Scan(&rec.LatestTermID, &rec.LatestTermName, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TermRecord{}, ErrNotFound
		}
		return TermRecord{}, fmt.Errorf("get latest term: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepo) PutLatestTerm(ctx context.Context, rec TermRecord) error {
	const sql = `
		INSERT INTO catalog_latest_term (id, latest_term_id, latest_term_name, updated_at)
		VALUES (1, $1, $2, now())
		ON CONFLICT (id) DO UPDATE SET
			latest_term_id = EXCLUDED.latest_term_id,
			latest_term_name = EXCLUDED.latest_term_name,
			updated_at = now()`

	if _, err := r.db.Exec(ctx, sql, rec.LatestTermID, rec.LatestTermName); err != nil {
		return fmt.Errorf("put latest term: %w", err)
	}
	return nil
}

func (r *PostgresRepo) ListSubjects(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, "SELECT subject FROM catalog_course_data ORDER BY subject ASC")
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	subjects, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

func (r *PostgresRepo) GetSubject(ctx context.Context, subject string) (SubjectCatalog, error) {
	const query = `
		SELECT subject, numbers, updated_at
		FROM catalog_course_data
		WHERE subject = $1`

	var sc SubjectCatalog
	err := r.db.QueryRow(ctx, query, subject).Scan(&sc.Subject, &sc.Numbers, &sc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SubjectCatalog{}, ErrNotFound
		}
		return SubjectCatalog{}, fmt.Errorf("get subject %s: %w", subject, err)
	}
	if sc.Numbers == nil {
		sc.Numbers = []string{}
	}
	return sc, nil
}

const upsertSubjectSQL = `
	INSERT INTO catalog_course_data (subject, numbers, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (subject) DO UPDATE SET
		numbers = EXCLUDED.numbers,
		updated_at = now()`

func (r *PostgresRepo) PutSubject(ctx context.Context, sc SubjectCatalog) error {
	if _, err := r.db.Exec(ctx, upsertSubjectSQL, sc.Subject, nonNil(sc.Numbers)); err != nil {
		return fmt.Errorf("put subject %s: %w", sc.Subject, err)
	}
	return nil
}

// ReplaceAll empties every stored subject and writes idx in one transaction.
func (r *PostgresRepo) ReplaceAll(ctx context.Context, idx *Index) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "UPDATE catalog_course_data SET numbers = '{}', updated_at = now()"); err != nil {
		return fmt.Errorf("clear course data: %w", err)
	}

	batch := &pgx.Batch{}
	for _, sc := range idx.Catalogs() {
		batch.Queue(upsertSubjectSQL, sc.Subject, nonNil(sc.Numbers))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("write course data: %w", err)
	}

	return tx.Commit(ctx)
}

// nonNil keeps NOT NULL array columns from receiving NULL for empty lists.
func nonNil(numbers []string) []string {
	if numbers == nil {
		return []string{}
	}
	return numbers
}
