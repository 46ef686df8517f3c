package summaries

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Column order shared by the Postgres and SQLite repos.
const summaryColumns = `document_id, filename, status, executive_summary, domain, key_arguments, key_models_or_frameworks, key_variables_or_concepts, failure_reason, created_at, updated_at`

func upsertArgs(record Record) ([]any, error) {
	now := time.Now().UTC()
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	keyArguments, err := marshalOrNull(record.KeyArguments, len(record.KeyArguments) > 0)
	if err != nil {
		return nil, fmt.Errorf("marshal key_arguments: %w", err)
	}
	keyModels, err := marshalOrNull(record.KeyModels, len(record.KeyModels) > 0)
	if err != nil {
		return nil, fmt.Errorf("marshal key_models_or_frameworks: %w", err)
	}
	keyVariables, err := marshalOrNull(record.KeyVariables, len(record.KeyVariables) > 0)
	if err != nil {
		return nil, fmt.Errorf("marshal key_variables_or_concepts: %w", err)
	}

	return []any{
		record.DocumentID,
		record.Filename,
		string(record.Status),
		record.ExecutiveSummary,
		nullIfEmpty(record.Domain),
		keyArguments,
		keyModels,
		keyVariables,
		nullIfEmpty(record.FailureReason),
		createdAt,
		now,
	}, nil
}

func marshalOrNull(v any, present bool) (any, error) {
	if !present {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		record        Record
		status        string
		domain        sql.NullString
		keyArguments  sql.NullString
		keyModels     sql.NullString
		keyVariables  sql.NullString
		failureReason sql.NullString
	)
	err := row.Scan(
		&record.DocumentID,
		&record.Filename,
		&status,
		&record.ExecutiveSummary,
		&domain,
		&keyArguments,
		&keyModels,
		&keyVariables,
		&failureReason,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return Record{}, err
	}

	record.Status = Status(status)
	record.Domain = domain.String
	record.FailureReason = failureReason.String
	if keyArguments.Valid {
		if err := json.Unmarshal([]byte(keyArguments.String), &record.KeyArguments); err != nil {
			return Record{}, fmt.Errorf("unmarshal key_arguments: %w", err)
		}
	}
	if keyModels.Valid {
		if err := json.Unmarshal([]byte(keyModels.String), &record.KeyModels); err != nil {
			return Record{}, fmt.Errorf("unmarshal key_models_or_frameworks: %w", err)
		}
	}
	if keyVariables.Valid {
		if err := json.Unmarshal([]byte(keyVariables.String), &record.KeyVariables); err != nil {
			return Record{}, fmt.Errorf("unmarshal key_variables_or_concepts: %w", err)
		}
	}
	return record, nil
}

func clampListWindow(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
