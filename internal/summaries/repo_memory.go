package summaries

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores summaries in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Record)}
}

// Upsert inserts or replaces the summary for a document.
func (r *MemoryRepo) Upsert(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.byID[record.DocumentID]; ok {
		record.CreatedAt = existing.CreatedAt
	} else if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	r.byID[record.DocumentID] = record
	return nil
}

// GetByID returns the summary for a document.
func (r *MemoryRepo) GetByID(ctx context.Context, documentID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.byID[documentID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return record, nil
}

// List returns summaries ordered newest-first.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = clampListWindow(limit, offset)

	r.mu.RLock()
	records := make([]Record, 0, len(r.byID))
	for _, record := range r.byID {
		records = append(records, record)
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})

	if offset >= len(records) {
		return []Record{}, nil
	}
	end := len(records)
	if offset+limit < end {
		end = offset + limit
	}
	return records[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
