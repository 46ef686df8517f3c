package summaries

import (
	"context"
	"database/sql"
	"errors"
)

// SQLiteRepo implements Repo over the file-backed sqlite store the tool
// server ships with by default.
type SQLiteRepo struct {
	DB *sql.DB
}

// Upsert inserts or replaces the summary for a document.
func (r *SQLiteRepo) Upsert(ctx context.Context, record Record) error {
	const query = `
INSERT INTO summaries (` + summaryColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (document_id) DO UPDATE SET
    filename = excluded.filename,
    status = excluded.status,
    executive_summary = excluded.executive_summary,
    domain = excluded.domain,
    key_arguments = excluded.key_arguments,
    key_models_or_frameworks = excluded.key_models_or_frameworks,
    key_variables_or_concepts = excluded.key_variables_or_concepts,
    failure_reason = excluded.failure_reason,
    updated_at = excluded.updated_at`
	args, err := upsertArgs(record)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query, args...)
	return err
}

// GetByID returns the summary for a document.
func (r *SQLiteRepo) GetByID(ctx context.Context, documentID string) (Record, error) {
	const query = `
SELECT ` + summaryColumns + `
FROM summaries
WHERE document_id = ?
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
func (r *SQLiteRepo) List(ctx context.Context, limit, offset int) ([]Record, error) {
	limit, offset = clampListWindow(limit, offset)
	const query = `
SELECT ` + summaryColumns + `
FROM summaries
ORDER BY updated_at DESC
LIMIT ? OFFSET ?`

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

var _ Repo = (*SQLiteRepo)(nil)
