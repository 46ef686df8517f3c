// Package batch drives the document pipeline: list the directory once, then
// for each document read it to completion, summarize, validate, and persist
// exactly one summary record before moving on.
package batch

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"analyzer-backend/internal/llm"
	"analyzer-backend/internal/reader"
	"analyzer-backend/internal/shared/metrics"
	"analyzer-backend/internal/shared/telemetry"
	"analyzer-backend/internal/summaries"
	"analyzer-backend/internal/tools"
)

const defaultMaxPersistFailures = 3

// ListingError means the directory could not be enumerated. It is fatal to
// the whole run: there is nothing to process.
type ListingError struct {
	Path string
	Err  error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("list directory %s: %v", e.Path, e.Err)
}

func (e *ListingError) Unwrap() error { return e.Err }

// ValidationError is returned in strict mode when a produced record violates
// the summaries schema.
type ValidationError struct {
	Path       string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record for %s violates schema: %s", e.Path, strings.Join(e.Violations, ", "))
}

// PersistenceError means summary saves kept failing and the run aborted
// rather than silently skipping documents.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist summary for %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// DocumentOutcome reports what happened to one document.
type DocumentOutcome struct {
	Path       string `json:"path"`
	DocumentID string `json:"documentId"`
	Status     string `json:"status"` // completed | failed | unresolved
	Detail     string `json:"detail,omitempty"`
}

// RunResult reports final counts and per-document outcomes for one run.
type RunResult struct {
	RunID      string            `json:"runId"`
	Total      int               `json:"total"`
	Completed  int               `json:"completed"`
	Failed     int               `json:"failed"`
	Unresolved int               `json:"unresolved"`
	Documents  []DocumentOutcome `json:"documents"`
}

// Runner orchestrates one batch over a directory. Documents are processed
// strictly sequentially in listing order; each document gets exactly one
// persistence call regardless of how its pipeline went.
type Runner struct {
	Lister     tools.DirectoryLister
	Reader     *reader.Adapter
	Saver      tools.SummarySaver
	Summarizer llm.Summarizer

	// Strict aborts the run on a schema violation instead of demoting the
	// record to failed.
	Strict bool
	// MaxPersistFailures bounds consecutive save failures before the run
	// aborts with a PersistenceError.
	MaxPersistFailures int
}

// Run processes every document listed under directoryPath. An empty listing
// is a successful empty run. A non-nil error means the run aborted; the
// returned result still reflects the documents finished before the abort.
func (r *Runner) Run(ctx context.Context, directoryPath string) (RunResult, error) {
	result := RunResult{RunID: uuid.NewString()}
	metrics.IncRuns()

	maxPersistFailures := r.MaxPersistFailures
	if maxPersistFailures <= 0 {
		maxPersistFailures = defaultMaxPersistFailures
	}

	entries, err := r.Lister.ListDirectory(ctx, directoryPath)
	if err != nil {
		return result, &ListingError{Path: directoryPath, Err: err}
	}

	telemetry.Info("run.started", map[string]any{
		"run_id":    result.RunID,
		"directory": directoryPath,
		"entries":   len(entries),
	})

	persistFailures := 0
	for _, entry := range entries {
		if entry.IsDir {
			continue
		}
		if err := ctx.Err(); err != nil {
			// The in-flight document stays unpersisted and counts as
			// not-yet-processed for a later run.
			return result, err
		}

		start := time.Now()
		record := r.processDocument(ctx, entry)

		if violations := summaries.Validate(record); len(violations) > 0 {
			if r.Strict {
				return result, &ValidationError{Path: entry.Path, Violations: violations}
			}
			telemetry.Warn("run.document.demoted", map[string]any{
				"run_id":     result.RunID,
				"path":       entry.Path,
				"violations": violations,
			})
			record = summaries.Demote(record, violations)
		}

		result.Total++
		outcome := DocumentOutcome{Path: entry.Path, DocumentID: record.DocumentID, Status: string(record.Status)}

		if err := r.Saver.SaveSummary(ctx, record); err != nil {
			persistFailures++
			result.Unresolved++
			outcome.Status = "unresolved"
			outcome.Detail = err.Error()
			result.Documents = append(result.Documents, outcome)
			metrics.IncDocumentUnresolved()
			telemetry.Error("run.document.unresolved", map[string]any{
				"run_id":      result.RunID,
				"path":        entry.Path,
				"document_id": record.DocumentID,
				"error":       err.Error(),
			})
			if persistFailures >= maxPersistFailures {
				return result, &PersistenceError{Path: entry.Path, Err: err}
			}
			continue
		}
		persistFailures = 0
		metrics.IncSummarySaved()

		switch record.Status {
		case summaries.StatusCompleted:
			result.Completed++
			metrics.IncDocumentCompleted()
		case summaries.StatusFailed:
			result.Failed++
			outcome.Detail = record.FailureReason
			metrics.IncDocumentFailed()
		}
		result.Documents = append(result.Documents, outcome)
		metrics.ObserveDocumentDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

		telemetry.Info("run.document.persisted", map[string]any{
			"run_id":      result.RunID,
			"path":        entry.Path,
			"document_id": record.DocumentID,
			"status":      string(record.Status),
		})
	}

	telemetry.Info("run.complete", map[string]any{
		"run_id":     result.RunID,
		"total":      result.Total,
		"completed":  result.Completed,
		"failed":     result.Failed,
		"unresolved": result.Unresolved,
	})
	return result, nil
}

// processDocument runs read → summarize → parse for one document and always
// returns a candidate record; failures along the way yield a failed record so
// the run can continue.
func (r *Runner) processDocument(ctx context.Context, entry tools.DirectoryEntry) summaries.Record {
	text, err := r.Reader.ReadAll(ctx, entry.Path)
	if err != nil {
		return summaries.NewFailed(documentIDFromPath(entry.Path), entry.Name, err.Error())
	}
	documentID := documentIDFromContent(text)

	raw, err := r.Summarizer.Summarize(ctx, llm.SummarizeInput{Filename: entry.Name, Content: text})
	if err != nil {
		return summaries.NewFailed(documentID, entry.Name, fmt.Sprintf("summarization failed: %v", err))
	}

	var analysis summaries.Analysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return summaries.NewFailed(documentID, entry.Name, fmt.Sprintf("summary output parse failed: %v", err))
	}

	return summaries.NewCompleted(documentID, entry.Name, analysis)
}

// documentIDFromContent derives the document ID from the accumulated content,
// so the same document text maps to the same record across runs.
func documentIDFromContent(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// documentIDFromPath is the fallback when content never arrived.
func documentIDFromPath(path string) string {
	sum := md5.Sum([]byte(path))
	return hex.EncodeToString(sum[:])
}
