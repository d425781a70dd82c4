package repositories

import (
	"context"
	"testing"

	"dealership/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var carColumns = []string{
	"id", "make", "model", "variant", "year", "category_id",
	"name", "transmission", "fuel", "color", "mileage_km",
	"engine_cc", "price_cents", "status", "photo_urls", "grade_scores",
}

func TestFetchPageScansRecords(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM cars c").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("FROM cars c").
		WillReturnRows(sqlmock.NewRows(carColumns).
			AddRow(1, "Toyota", "Vitz", "RS", 2018, 3, "Hatchback", "AT", "Petrol", "Silver",
				45210, 1300, 1250000, "available", "a.jpg, b.jpg", "4, 4.5").
			AddRow(2, "Honda", "Fit", "", 2020, 3, "Hatchback", "CVT", "Hybrid", "Blue",
				12000, 1500, 1890000, "available", "", ""))

	repo := CarRepository{DB: db}
	page, err := repo.FetchPage(context.Background(), models.CarFilter{}, 1, 15)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}

	if len(page.Records) != 2 || page.TotalCount != 2 || page.TotalPages != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	first := page.Records[0]
	if len(first.PhotoURLs) != 2 || first.PhotoURLs[1] != "b.jpg" {
		t.Fatalf("photo list not split: %#v", first.PhotoURLs)
	}
	if len(first.GradeScores) != 2 || first.GradeScores[1] != 4.5 {
		t.Fatalf("grade scores not parsed: %#v", first.GradeScores)
	}
	if page.Records[1].PhotoURLs != nil {
		t.Fatalf("empty photo column should yield nil slice")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFetchPageComputesTotalPages(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM cars c").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(37))
	mock.ExpectQuery("FROM cars c").
		WillReturnRows(sqlmock.NewRows(carColumns))

	repo := CarRepository{DB: db}
	page, err := repo.FetchPage(context.Background(), models.CarFilter{}, 3, 15)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if page.TotalPages != 3 {
		t.Fatalf("total pages = %d, want 3 for 37 records at 15 per page", page.TotalPages)
	}
	if page.Page != 3 {
		t.Fatalf("page echo = %d, want 3", page.Page)
	}
}

func TestFetchPageAppliesFilterArgs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM cars c").
		WithArgs("Toyota", "available").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM cars c").
		WithArgs("Toyota", "available", 15, 0).
		WillReturnRows(sqlmock.NewRows(carColumns))

	repo := CarRepository{DB: db}
	filter := models.CarFilter{Make: "Toyota", Status: "available"}
	if _, err := repo.FetchPage(context.Background(), filter, 1, 15); err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCarOrderClauseWhitelistsSortKeys(t *testing.T) {
	cases := []struct {
		sortBy string
		desc   bool
		want   string
	}{
		{"", false, "c.make ASC, c.id ASC"},
		{"price", true, "c.price_cents DESC, c.id ASC"},
		{"year", false, "c.year ASC, c.id ASC"},
		{"mileage", false, "c.mileage_km ASC, c.id ASC"},
		{"model", true, "c.model DESC, c.id ASC"},
		{"price; DROP TABLE cars", false, "c.make ASC, c.id ASC"},
	}
	for _, c := range cases {
		got := carOrderClause(models.CarFilter{SortBy: c.sortBy, SortDesc: c.desc})
		if got != c.want {
			t.Fatalf("sortBy=%q: got %q, want %q", c.sortBy, got, c.want)
		}
	}
}

func TestSplitListAndParseScores(t *testing.T) {
	if got := splitList(" a.jpg ,, b.jpg "); len(got) != 2 || got[0] != "a.jpg" {
		t.Fatalf("splitList: %#v", got)
	}
	if got := splitList(""); got != nil {
		t.Fatalf("splitList empty: %#v", got)
	}
	if got := parseScores("4, junk, 4.5"); len(got) != 2 || got[1] != 4.5 {
		t.Fatalf("parseScores: %#v", got)
	}
}
