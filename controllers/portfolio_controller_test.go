package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func portfolioTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	})
	r.GET("/portfolio/:slug", GetPublicPortfolio)
	return r
}

// The public portfolio page must only ever load projects the student made
// public. Only the is_public-filtered project query is registered on the
// mock, so an unfiltered load would be an unexpected statement and a 500.
func TestGetPublicPortfolioFiltersPrivateProjects(t *testing.T) {
	db, mock := newMockDB(t)

	portfolioID := uuid.New()
	studentID := uuid.New()
	projectID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "portfolios" WHERE slug = \$1 AND is_public = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "student_id", "slug", "bio", "is_public", "theme",
		}).AddRow(
			portfolioID.String(), studentID.String(), "asha-kumar", "Maker", true, "default",
		))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email"}).
			AddRow(studentID.String(), "Asha Kumar", "asha@example.com"))

	mock.ExpectQuery(`SELECT (.+) FROM "projects" WHERE student_id = \$1 AND is_public = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "title", "is_public", "status"}).
			AddRow(projectID.String(), studentID.String(), "Line Bot", true, "COMPLETED"))
	mock.ExpectQuery(`SELECT (.+) FROM "project_plans"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id"}))

	mock.ExpectQuery(`SELECT (.+) FROM "certificates"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "project_id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "awards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "title"}))

	r := portfolioTestRouter(db)
	req := httptest.NewRequest(http.MethodGet, "/portfolio/asha-kumar", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	projects := body["projects"].([]interface{})
	require.Len(t, projects, 1)
	assert.Equal(t, "Line Bot", projects[0].(map[string]interface{})["title"])
}

func TestUniqueSlugAppendsCounter(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "portfolios"`).
		WithArgs("asha-kumar").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "portfolios"`).
		WithArgs("asha-kumar-2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	got, err := uniqueSlug(db, "Asha Kumar")
	require.NoError(t, err)
	assert.Equal(t, "asha-kumar-2", got)
}

func TestUniqueSlugPropagatesQueryError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "portfolios"`).
		WillReturnError(errors.New("connection reset"))

	_, err := uniqueSlug(db, "Asha Kumar")
	assert.Error(t, err)
}
