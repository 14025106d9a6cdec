package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateStoresNullFilePath(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	doc := Document{
		ID:            "doc-1",
		UserID:        "user-1",
		Type:          TypeAnalyzed,
		Title:         "Perjanjian Kerahasiaan",
		AgreementType: "NDA",
		PartyOne:      "PT Maju",
		PartyTwo:      "CV Jaya",
		Description:   "Kerahasiaan informasi",
		Date:          "2023-01-05",
		Content:       "raw",
		CreatedAt:     created,
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID, doc.UserID, "analyzed", doc.Title, doc.AgreementType,
			doc.PartyOne, doc.PartyTwo, doc.Description, doc.Date, doc.Content,
			nil, created, created,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDMapsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM documents").
		WithArgs("missing", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = (&PGRepo{DB: db}).GetByID(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUserScansRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "type", "title", "agreement_type", "party_one", "party_two",
		"description", "document_date", "content", "file_path", "created_at", "updated_at",
	}).
		AddRow("doc-1", "user-1", "generated", "Sewa", "Sewa", "A", "B", "d", "2024-03-10", "<p>x</p>", "documents/u/sewa-1.html", now, now).
		AddRow("doc-2", "user-1", "analyzed", "NDA", "NDA", "C", "D", "e", "2023-01-05", "raw", nil, now, now)

	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	docs, err := (&PGRepo{DB: db}).ListByUser(context.Background(), "user-1", 20, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Type != TypeGenerated || docs[0].FilePath != "documents/u/sewa-1.html" {
		t.Fatalf("unexpected first document: %+v", docs[0])
	}
	if docs[1].FilePath != "" || docs[1].Date != "2023-01-05" {
		t.Fatalf("unexpected second document: %+v", docs[1])
	}
}

func TestPGRepoUpdateFilePathRequiresRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE documents").
		WithArgs("documents/u/a.html", sqlmock.AnyArg(), "doc-1", "user-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = (&PGRepo{DB: db}).UpdateFilePath(context.Background(), "user-2", "doc-1", "documents/u/a.html")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("doc-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (&PGRepo{DB: db}).Delete(context.Background(), "user-1", "doc-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
