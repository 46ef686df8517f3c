// Package tools defines the three collaborator operations the batch agent
// depends on: directory listing, chunked document reads, and summary
// persistence. Implementations live elsewhere (HTTP client here, handlers in
// toolserver); the batch orchestrator only sees these interfaces.
package tools

import (
	"context"

	"analyzer-backend/internal/summaries"
)

// DirectoryEntry is one discoverable unit of work returned by list_directory.
type DirectoryEntry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
}

// Chunk is one bounded window of document content returned by
// read_document_chunk.
type Chunk struct {
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	Offset      int    `json:"offset"`
	NextOffset  *int   `json:"next_offset"`
	ChunkSize   int    `json:"chunk_size"`
	TotalLength int    `json:"total_length"`
	Progress    string `json:"progress"`
	EOF         bool   `json:"eof"`
	Content     string `json:"content"`
}

// DirectoryLister enumerates candidate documents. Called exactly once per run,
// before any document work.
type DirectoryLister interface {
	ListDirectory(ctx context.Context, path string) ([]DirectoryEntry, error)
}

// ChunkReader returns one bounded window of a document per call.
type ChunkReader interface {
	ReadChunk(ctx context.Context, path string, offset, chunkSize int) (Chunk, error)
}

// SummarySaver persists a schema-conformant summary record. The saver is the
// sole externally visible mutation point of a run.
type SummarySaver interface {
	SaveSummary(ctx context.Context, record summaries.Record) error
}
