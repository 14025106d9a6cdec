package lawyers

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoSearchBuildsFilteredQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	q, err := Query{
		Text:            "50%_off",
		Specializations: []string{"Contract Law", `Say "hi"`},
		MinRating:       4.5,
		SortBy:          SortExperience,
		Limit:           2,
		Page:            3,
	}.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	where := ` WHERE (name ILIKE $1 OR location ILIKE $1) AND specialization ?| $2::text[] AND rating >= $3`
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM lawyers` + where)).
		WithArgs(`%50\%\_off%`, `{"Contract Law","Say \"hi\""}`, 4.5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(where + ` ORDER BY experience_years ASC, name ASC LIMIT $4 OFFSET $5`)).
		WithArgs(`%50\%\_off%`, `{"Contract Law","Say \"hi\""}`, 4.5, 2, 4).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "specialization", "location", "rating", "experience_years",
			"image_url", "email", "phone", "available",
		}).AddRow("ahmad-fauzi", "Ahmad", []byte(`["Contract Law","Corporate Law"]`), "Jakarta", 4.8, 15, "", "a@x", "+62", true))

	found, total, err := (&PGRepo{DB: db}).Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total != 7 || len(found) != 1 {
		t.Fatalf("unexpected result: total=%d found=%+v", total, found)
	}
	if got := found[0]; got.Rating != 4.8 || len(got.Specialization) != 2 || got.Specialization[1] != "Corporate Law" {
		t.Fatalf("unexpected lawyer: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSearchWithoutFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	q, _ := Query{Descending: true}.Normalize()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM lawyers`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM lawyers ORDER BY rating DESC, name ASC LIMIT $1 OFFSET $2`)).
		WithArgs(DefaultLimit, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	found, total, err := (&PGRepo{DB: db}).Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total != 0 || found == nil || len(found) != 0 {
		t.Fatalf("expected empty non-nil page, got total=%d found=%v", total, found)
	}
}

func TestPGRepoUpsertRunsInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectExec("ON CONFLICT \\(id\\) DO UPDATE").
		WithArgs("reza-pratama", "Reza", `["Labor Law"]`, "Medan", 4.3, 5, "", "r@x", "+62", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("ON CONFLICT \\(id\\) DO UPDATE").
		WithArgs("empty", "Empty", `[]`, "", 0.0, 0, "", "", "", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = (&PGRepo{DB: db}).Upsert(context.Background(), []Lawyer{
		{ID: "reza-pratama", Name: "Reza", Specialization: []string{"Labor Law"}, Location: "Medan", Rating: 4.3, ExperienceYears: 5, Email: "r@x", Phone: "+62", Available: true},
		{ID: "empty", Name: "Empty"},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
