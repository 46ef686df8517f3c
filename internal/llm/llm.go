package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Summarizer abstracts LLM providers for document summarization. The returned
// payload is the analytical JSON object (executive summary, domain, key
// arguments, models, concepts) for one document.
type Summarizer interface {
	Summarize(ctx context.Context, input SummarizeInput) (json.RawMessage, error)
}

// SummarizeInput captures the inputs needed to summarize one document.
type SummarizeInput struct {
	Filename string
	Content  string
}

// ErrNotImplemented is returned by the placeholder summarizer.
var ErrNotImplemented = errors.New("summarizer not implemented")

// PlaceholderSummarizer is a stub implementation until provider wiring is added.
type PlaceholderSummarizer struct{}

// Summarize returns ErrNotImplemented.
func (PlaceholderSummarizer) Summarize(ctx context.Context, input SummarizeInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}
