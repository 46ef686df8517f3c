package summaries

import (
	"reflect"
	"testing"
)

func completedRecord() Record {
	return NewCompleted("doc-1", "a.txt", Analysis{
		ExecutiveSummary: "A short history of everything.",
		Domain:           "history",
		KeyArguments:     []string{"things happened"},
		KeyModels:        []ModelRef{{Name: "periodization", Description: "dividing time into eras"}},
		KeyVariables:     []ConceptRef{{Term: "era", Explanation: "a span of time"}},
	})
}

func TestValidateCompletedRecord(t *testing.T) {
	if violations := Validate(completedRecord()); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestValidateFailedRecord(t *testing.T) {
	record := NewFailed("doc-2", "b.pdf", "read error")
	if violations := Validate(record); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestValidateCompletedMissingSummary(t *testing.T) {
	record := completedRecord()
	record.ExecutiveSummary = ""
	violations := Validate(record)
	if len(violations) != 1 || violations[0] != "executive_summary" {
		t.Fatalf("expected executive_summary violation, got %v", violations)
	}
}

func TestValidateCompletedWithFailureReason(t *testing.T) {
	record := completedRecord()
	record.FailureReason = "should not be here"
	violations := Validate(record)
	if len(violations) != 1 || violations[0] != "failure_reason" {
		t.Fatalf("expected failure_reason violation, got %v", violations)
	}
}

func TestValidateFailedWithAnalyticalFields(t *testing.T) {
	record := NewFailed("doc-3", "c.md", "read error")
	record.Domain = "physics"
	record.KeyArguments = []string{"leftover"}
	record.KeyModels = []ModelRef{{Name: "x"}}
	record.KeyVariables = []ConceptRef{{Term: "y"}}

	violations := Validate(record)
	want := []string{"domain", "key_arguments", "key_models_or_frameworks", "key_variables_or_concepts"}
	if !reflect.DeepEqual(violations, want) {
		t.Fatalf("expected violations %v, got %v", want, violations)
	}
}

func TestValidateUnknownStatus(t *testing.T) {
	record := completedRecord()
	record.Status = "pending"
	violations := Validate(record)
	if len(violations) != 1 || violations[0] != "status" {
		t.Fatalf("expected status violation, got %v", violations)
	}
}

func TestValidateMissingIdentity(t *testing.T) {
	record := completedRecord()
	record.DocumentID = ""
	record.Filename = "  "
	violations := Validate(record)
	if len(violations) != 2 {
		t.Fatalf("expected document_id and filename violations, got %v", violations)
	}
}

func TestValidateIsPure(t *testing.T) {
	record := completedRecord()
	record.FailureReason = "oops"
	before := record
	Validate(record)
	Validate(record)
	if !reflect.DeepEqual(before, record) {
		t.Fatalf("validate mutated the record: %+v != %+v", before, record)
	}
}

func TestDemoteProducesValidFailedRecord(t *testing.T) {
	record := completedRecord()
	record.ExecutiveSummary = ""
	violations := Validate(record)
	if len(violations) == 0 {
		t.Fatalf("expected violations before demotion")
	}

	demoted := Demote(record, violations)
	if demoted.Status != StatusFailed {
		t.Fatalf("expected failed status, got %s", demoted.Status)
	}
	if demoted.DocumentID != record.DocumentID || demoted.Filename != record.Filename {
		t.Fatalf("demotion must keep document identity")
	}
	if demoted.FailureReason == "" {
		t.Fatalf("expected generic failure reason")
	}
	if demoted.Domain != "" || len(demoted.KeyArguments) != 0 {
		t.Fatalf("demoted record must not carry analytical fields")
	}
	if got := Validate(demoted); len(got) != 0 {
		t.Fatalf("demoted record must validate clean, got %v", got)
	}
}

func TestNewFailedDefaultsReason(t *testing.T) {
	record := NewFailed("doc-4", "d.txt", "")
	if record.FailureReason == "" {
		t.Fatalf("expected a default failure reason")
	}
	if got := Validate(record); len(got) != 0 {
		t.Fatalf("expected valid record, got %v", got)
	}
}
