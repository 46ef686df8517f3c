package summaries

import (
	"fmt"
	"strings"
)

// Validate checks a record against the summaries schema and returns the
// violated field names, empty when the record is valid. It is a pure check:
// the record is never mutated.
//
// Required for every record: document_id, filename, a known status, and a
// non-empty executive_summary. Completed records must carry domain and
// key_arguments and must not carry failure_reason. Failed records must carry
// failure_reason and must not carry any analytical field.
func Validate(r Record) []string {
	var violations []string

	if strings.TrimSpace(r.DocumentID) == "" {
		violations = append(violations, "document_id")
	}
	if strings.TrimSpace(r.Filename) == "" {
		violations = append(violations, "filename")
	}
	if strings.TrimSpace(r.ExecutiveSummary) == "" {
		violations = append(violations, "executive_summary")
	}

	switch r.Status {
	case StatusCompleted:
		if strings.TrimSpace(r.Domain) == "" {
			violations = append(violations, "domain")
		}
		if len(r.KeyArguments) == 0 {
			violations = append(violations, "key_arguments")
		}
		if r.FailureReason != "" {
			violations = append(violations, "failure_reason")
		}
	case StatusFailed:
		if strings.TrimSpace(r.FailureReason) == "" {
			violations = append(violations, "failure_reason")
		}
		if r.Domain != "" {
			violations = append(violations, "domain")
		}
		if len(r.KeyArguments) > 0 {
			violations = append(violations, "key_arguments")
		}
		if len(r.KeyModels) > 0 {
			violations = append(violations, "key_models_or_frameworks")
		}
		if len(r.KeyVariables) > 0 {
			violations = append(violations, "key_variables_or_concepts")
		}
	default:
		violations = append(violations, "status")
	}

	return violations
}

// Demote converts a record that failed validation into a failed record with a
// generic reason, so a summary is still persisted exactly once for the
// document. The demoted record always passes Validate.
func Demote(r Record, violations []string) Record {
	reason := fmt.Sprintf("schema validation failed: %s", strings.Join(violations, ", "))
	return NewFailed(r.DocumentID, r.Filename, reason)
}
