package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateInsertsPendingRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	doc := Document{
		ID:         "doc-1",
		UserID:     "user-1",
		Title:      "Sale Deed",
		FileName:   "deed.pdf",
		StorageKey: "user-1/abc_deed.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  2048,
		Region:     "400001",
		UploadedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID,
			doc.UserID,
			doc.Title,
			doc.FileName,
			doc.StorageKey,
			doc.MimeType,
			doc.SizeBytes,
			doc.Region,
			StatusPending,
			doc.UploadedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoVerifyUpdatesPendingRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE documents").
		WithArgs(StatusApproved, "reviewer-1", "looks genuine", "", "doc-1", "400001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Verify(context.Background(), VerifyUpdate{
		DocumentID: "doc-1",
		Region:     "400001",
		ReviewerID: "reviewer-1",
		Status:     StatusApproved,
		Review:     "looks genuine",
	})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoVerifyDecidedRowReturnsInvalidTransition(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE documents").
		WithArgs(StatusRejected, "reviewer-1", "", "forged stamp", "doc-1", "400001").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM documents").
		WithArgs("doc-1", "400001").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	err := repo.Verify(context.Background(), VerifyUpdate{
		DocumentID: "doc-1",
		Region:     "400001",
		ReviewerID: "reviewer-1",
		Status:     StatusRejected,
		Issue:      "forged stamp",
	})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Verify err = %v, want ErrInvalidTransition", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoVerifyOutOfRegionReadsAsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE documents").
		WithArgs(StatusApproved, "reviewer-1", "", "", "doc-1", "110001").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM documents").
		WithArgs("doc-1", "110001").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	err := repo.Verify(context.Background(), VerifyUpdate{
		DocumentID: "doc-1",
		Region:     "110001",
		ReviewerID: "reviewer-1",
		Status:     StatusApproved,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Verify err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
