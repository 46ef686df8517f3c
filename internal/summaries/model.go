package summaries

import "time"

// Status is the terminal state of a summary record.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// failedSummaryNote fills executive_summary on failed records, which the
// summaries table requires for every row.
const failedSummaryNote = "Summary unavailable."

// ModelRef names a model or framework identified in a document.
type ModelRef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ConceptRef explains a variable or concept identified in a document.
type ConceptRef struct {
	Term        string `json:"term"`
	Explanation string `json:"explanation"`
}

// Record is the persisted result for one document. A record is either
// completed (analytical fields set, no failure reason) or failed (failure
// reason set, no analytical fields); the constructors below enforce that
// shape, Validate re-checks records assembled from external output.
type Record struct {
	DocumentID       string       `json:"document_id"`
	Filename         string       `json:"filename"`
	Status           Status       `json:"status"`
	ExecutiveSummary string       `json:"executive_summary"`
	Domain           string       `json:"domain,omitempty"`
	KeyArguments     []string     `json:"key_arguments,omitempty"`
	KeyModels        []ModelRef   `json:"key_models_or_frameworks,omitempty"`
	KeyVariables     []ConceptRef `json:"key_variables_or_concepts,omitempty"`
	FailureReason    string       `json:"failure_reason,omitempty"`
	CreatedAt        time.Time    `json:"createdAt,omitempty"`
	UpdatedAt        time.Time    `json:"updatedAt,omitempty"`
}

// Analysis is the analytical payload produced by the summarization step.
type Analysis struct {
	ExecutiveSummary string       `json:"executive_summary"`
	Domain           string       `json:"domain"`
	KeyArguments     []string     `json:"key_arguments"`
	KeyModels        []ModelRef   `json:"key_models_or_frameworks"`
	KeyVariables     []ConceptRef `json:"key_variables_or_concepts"`
}

// NewCompleted builds a completed record from an analysis payload.
func NewCompleted(documentID, filename string, analysis Analysis) Record {
	return Record{
		DocumentID:       documentID,
		Filename:         filename,
		Status:           StatusCompleted,
		ExecutiveSummary: analysis.ExecutiveSummary,
		Domain:           analysis.Domain,
		KeyArguments:     analysis.KeyArguments,
		KeyModels:        analysis.KeyModels,
		KeyVariables:     analysis.KeyVariables,
	}
}

// NewFailed builds a failed record carrying only the failure reason.
func NewFailed(documentID, filename, reason string) Record {
	if reason == "" {
		reason = "unknown failure"
	}
	return Record{
		DocumentID:       documentID,
		Filename:         filename,
		Status:           StatusFailed,
		ExecutiveSummary: failedSummaryNote,
		FailureReason:    reason,
	}
}
