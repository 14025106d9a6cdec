package activities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func TestServiceRecordRejectsUnknownType(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Record(context.Background(), "user-1", Type("upload"), "x", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHandlerListsNewestFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := NewMemoryRepo()
	svc := NewService(repo)
	clock := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return clock }

	if _, err := svc.Record(context.Background(), "user-1", TypeAnalyzer, "NDA", "doc-1"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	clock = clock.Add(time.Hour)
	if _, err := svc.Record(context.Background(), "user-1", TypeGenerator, "Sewa", "doc-2"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := svc.Record(context.Background(), "user-2", TypeChat, "other", ""); err != nil {
		t.Fatalf("Record: %v", err)
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activities", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var got []activityResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(got))
	}
	if got[0].Type != TypeGenerator || got[0].DocumentID != "doc-2" || got[0].Date != "2024-03-10 09:00" {
		t.Fatalf("unexpected first activity: %+v", got[0])
	}
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO activities").
		WithArgs("act-1", "user-1", "chat", "Tanya hukum", nil, at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &PGRepo{DB: db}
	err = repo.Create(context.Background(), Activity{ID: "act-1", UserID: "user-1", Type: TypeChat, Title: "Tanya hukum", CreatedAt: at})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM activities").
		WithArgs("user-1", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "title", "document_id", "created_at"}).
			AddRow("act-1", "user-1", "analyzer", "NDA", "doc-1", at))

	items, err := (&PGRepo{DB: db}).ListByUser(context.Background(), "user-1", 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 1 || items[0].Type != TypeAnalyzer || items[0].DocumentID != "doc-1" {
		t.Fatalf("unexpected activities: %+v", items)
	}
}
