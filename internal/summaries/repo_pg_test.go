package summaries

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsertFailedRecord(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = mockDB.Close() })

	repo := &PGRepo{DB: mockDB}
	record := NewFailed("doc-1", "c.pdf", "chunk read failed")

	mock.ExpectExec("INSERT INTO summaries").
		WithArgs(
			record.DocumentID,
			record.Filename,
			string(StatusFailed),
			record.ExecutiveSummary,
			nil, // domain
			nil, // key_arguments
			nil, // key_models_or_frameworks
			nil, // key_variables_or_concepts
			record.FailureReason,
			sqlmock.AnyArg(), // created_at
			sqlmock.AnyArg(), // updated_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Upsert(context.Background(), record); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpsertCompletedRecordMarshalsLists(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = mockDB.Close() })

	repo := &PGRepo{DB: mockDB}
	record := completedRecord()

	mock.ExpectExec("INSERT INTO summaries").
		WithArgs(
			record.DocumentID,
			record.Filename,
			string(StatusCompleted),
			record.ExecutiveSummary,
			record.Domain,
			`["things happened"]`,
			`[{"name":"periodization","description":"dividing time into eras"}]`,
			`[{"term":"era","explanation":"a span of time"}]`,
			nil, // failure_reason
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Upsert(context.Background(), record); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDRoundTrips(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = mockDB.Close() })

	repo := &PGRepo{DB: mockDB}
	want := completedRecord()

	rows := sqlmock.NewRows([]string{
		"document_id", "filename", "status", "executive_summary", "domain",
		"key_arguments", "key_models_or_frameworks", "key_variables_or_concepts",
		"failure_reason", "created_at", "updated_at",
	}).AddRow(
		want.DocumentID, want.Filename, string(want.Status), want.ExecutiveSummary, want.Domain,
		`["things happened"]`,
		`[{"name":"periodization","description":"dividing time into eras"}]`,
		`[{"term":"era","explanation":"a span of time"}]`,
		nil, want.CreatedAt, want.UpdatedAt,
	)
	mock.ExpectQuery("SELECT .+ FROM summaries").WithArgs(want.DocumentID).WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), want.DocumentID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusCompleted || got.Domain != want.Domain {
		t.Fatalf("unexpected record: %+v", got)
	}
	if len(got.KeyArguments) != 1 || got.KeyArguments[0] != "things happened" {
		t.Fatalf("key_arguments not decoded: %+v", got.KeyArguments)
	}
	if len(got.KeyModels) != 1 || got.KeyModels[0].Name != "periodization" {
		t.Fatalf("key_models_or_frameworks not decoded: %+v", got.KeyModels)
	}
	if got.FailureReason != "" {
		t.Fatalf("expected empty failure_reason, got %q", got.FailureReason)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
