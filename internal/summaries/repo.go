package summaries

import "context"

// Repo persists summary records keyed by document ID.
type Repo interface {
	// Upsert inserts the record or replaces the existing one for the same
	// document. Re-running a batch over the same directory overwrites rather
	// than duplicates.
	Upsert(ctx context.Context, record Record) error
	GetByID(ctx context.Context, documentID string) (Record, error)
	List(ctx context.Context, limit, offset int) ([]Record, error)
}
