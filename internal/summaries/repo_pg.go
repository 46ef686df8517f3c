package summaries

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts or replaces the summary for a document.
func (r *PGRepo) Upsert(ctx context.Context, record Record) error {
	const query = `
INSERT INTO summaries (` + summaryColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (document_id) DO UPDATE SET
    filename = EXCLUDED.filename,
    status = EXCLUDED.status,
    executive_summary = EXCLUDED.executive_summary,
    domain = EXCLUDED.domain,
    key_arguments = EXCLUDED.key_arguments,
    key_models_or_frameworks = EXCLUDED.key_models_or_frameworks,
    key_variables_or_concepts = EXCLUDED.key_variables_or_concepts,
    failure_reason = EXCLUDED.failure_reason,
    updated_at = EXCLUDED.updated_at`
	args, err := upsertArgs(record)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query, args...)
	return err
}

// GetByID returns the summary for a document.
func (r *PGRepo) GetByID(ctx context.Context, documentID string) (Record, error) {
	const query = `
SELECT ` + summaryColumns + `
FROM summaries
WHERE document_id = $1
LIMIT 1`
	record, err := scanRecord(r.DB.QueryRowContext(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return record, nil
}

// List returns summaries ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Record, error) {
	limit, offset = clampListWindow(limit, offset)
	const query = `
SELECT ` + summaryColumns + `
FROM summaries
ORDER BY updated_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
