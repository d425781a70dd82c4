package handlers

import (
	"net/http"
	"strings"
	"testing"

	intconfig "dealership/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func TestDBCheck(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM cars").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	r := gin.New()
	r.GET("/api/db-check", DBCheck)
	w := perform(r, http.MethodGet, "/api/db-check")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, `"cars_in_db":12`) {
		t.Fatalf("body = %s", body)
	}
}

func TestDBCheckWithoutConnection(t *testing.T) {
	prev := intconfig.DB
	intconfig.DB = nil
	t.Cleanup(func() { intconfig.DB = prev })

	r := gin.New()
	r.GET("/api/db-check", DBCheck)
	w := perform(r, http.MethodGet, "/api/db-check")

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}
