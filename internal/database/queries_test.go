package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func newQueriesWithMock(t *testing.T) (*Queries, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return New(db), mock, func() { _ = db.Close() }
}

func TestGetResumesBySessionScansRows(t *testing.T) {
	q, mock, done := newQueriesWithMock(t)
	defer done()

	sessionID := uuid.New()
	first, second := uuid.New(), uuid.New()
	mock.ExpectQuery("SELECT id, original_filename, mime, object_key, session_id FROM resumes").
		WithArgs(sessionID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "original_filename", "mime", "object_key", "session_id"}).
			AddRow(first.String(), "cv.pdf", "application/pdf", "resumes/a.pdf", sessionID.String()).
			AddRow(second.String(), "cv.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "resumes/b.docx", sessionID.String()))

	resumes, err := q.GetResumesBySession(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resumes) != 2 {
		t.Fatalf("expected 2 resumes, got %d", len(resumes))
	}
	if resumes[0].ID != first || resumes[0].OriginalFilename != "cv.pdf" || resumes[1].ObjectKey != "resumes/b.docx" {
		t.Fatalf("unexpected rows %+v", resumes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetResumesBySessionPropagatesQueryError(t *testing.T) {
	q, mock, done := newQueriesWithMock(t)
	defer done()

	mock.ExpectQuery("FROM resumes").WillReturnError(errors.New("connection reset"))

	if _, err := q.GetResumesBySession(context.Background(), uuid.New()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUpdateSessionStatusReturnsRowsAffected(t *testing.T) {
	q, mock, done := newQueriesWithMock(t)
	defer done()

	id := uuid.New()
	mock.ExpectExec("UPDATE sessions").
		WithArgs("completed", id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE sessions").
		WithArgs("failed", id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := q.UpdateSessionStatus(context.Background(), UpdateSessionStatusParams{Status: "completed", ID: id})
	if err != nil || n != 1 {
		t.Fatalf("expected 1 row, got %d (%v)", n, err)
	}
	n, err = q.UpdateSessionStatus(context.Background(), UpdateSessionStatusParams{Status: "failed", ID: id})
	if err != nil || n != 0 {
		t.Fatalf("expected 0 rows, got %d (%v)", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateOrUpdateAnalysesResults(t *testing.T) {
	q, mock, done := newQueriesWithMock(t)
	defer done()

	id := uuid.New()
	results := json.RawMessage(`[{"score":50}]`)
	mock.ExpectExec("INSERT INTO analyses_results").
		WithArgs(results, id).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := q.CreateOrUpdateAnalysesResults(context.Background(), CreateOrUpdateAnalysesResultsParams{Results: results, SessionID: id})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetAnalysesResultsBySession(t *testing.T) {
	q, mock, done := newQueriesWithMock(t)
	defer done()

	id, sessionID := uuid.New(), uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery("FROM analyses_results").
		WithArgs(sessionID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "results", "session_id", "created_at", "updated_at"}).
			AddRow(id.String(), []byte(`[]`), sessionID.String(), now, now))

	got, err := q.GetAnalysesResultsBySession(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != id || string(got.Results) != "[]" {
		t.Fatalf("unexpected row %+v", got)
	}

	mock.ExpectQuery("FROM analyses_results").
		WithArgs(sessionID).
		WillReturnError(sql.ErrNoRows)
	if _, err := q.GetAnalysesResultsBySession(context.Background(), sessionID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}
