// Package reader turns the bounded read_document_chunk tool into a single
// logical read-entire-document operation.
package reader

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"analyzer-backend/internal/tools"
)

const (
	defaultChunkSize = 2000
	defaultMaxStalls = 3
)

// ReadError indicates a document's content could not be fully accumulated.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Adapter accumulates a document by issuing chunk reads at strictly
// increasing offsets until the source signals end-of-file.
type Adapter struct {
	Source    tools.ChunkReader
	ChunkSize int
	// MaxStalls bounds consecutive zero-length non-terminal chunks before the
	// read is abandoned, so a misbehaving source cannot loop us forever.
	MaxStalls int
}

// ReadAll reads the document at path to completion and returns the
// concatenated content. Offsets and lengths are counted in runes, matching
// the chunk tool's windowing.
func (a *Adapter) ReadAll(ctx context.Context, path string) (string, error) {
	chunkSize := a.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	maxStalls := a.MaxStalls
	if maxStalls <= 0 {
		maxStalls = defaultMaxStalls
	}

	var (
		builder strings.Builder
		offset  int
		stalls  int
	)
	for {
		if err := ctx.Err(); err != nil {
			return "", &ReadError{Path: path, Err: err}
		}

		chunk, err := a.Source.ReadChunk(ctx, path, offset, chunkSize)
		if err != nil {
			return "", &ReadError{Path: path, Err: err}
		}

		got := utf8.RuneCountInString(chunk.Content)
		builder.WriteString(chunk.Content)
		offset += got

		if chunk.EOF {
			return builder.String(), nil
		}
		if got == 0 {
			stalls++
			if stalls >= maxStalls {
				return "", &ReadError{Path: path, Err: fmt.Errorf("no progress after %d empty chunks at offset %d", stalls, offset)}
			}
			continue
		}
		stalls = 0
		if got < chunkSize {
			// Short chunk without an eof flag still means the content is
			// exhausted.
			return builder.String(), nil
		}
	}
}
