package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("SELECT version").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("PostgreSQL 15.0"))

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func publicTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	})
	r.GET("/certificates/verify/:code", VerifyCertificate)
	return r
}

func TestVerifyCertificateUnknownCode(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "certificates"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "verification_code"}))

	r := publicTestRouter(db)
	req := httptest.NewRequest(http.MethodGet, "/certificates/verify/doesnotexist", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["valid"])
}

func TestVerifyCertificateKnownCode(t *testing.T) {
	db, mock := newMockDB(t)

	certID := uuid.New()
	studentID := uuid.New()
	projectID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM "certificates"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "student_id", "project_id", "certificate_type",
			"certificate_no", "verification_code", "issued_at",
		}).AddRow(
			certID.String(), studentID.String(), projectID.String(), "STEM_ORG",
			"STEM-1700000000-ABCD1234", "deadbeef", now,
		))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email"}).
			AddRow(studentID.String(), "Asha Kumar", "asha@example.com"))
	mock.ExpectQuery(`SELECT (.+) FROM "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "title"}).
			AddRow(projectID.String(), studentID.String(), "Line Bot"))

	r := publicTestRouter(db)
	req := httptest.NewRequest(http.MethodGet, "/certificates/verify/deadbeef", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["valid"])

	cert := body["certificate"].(map[string]interface{})
	assert.Equal(t, "Asha Kumar", cert["student_name"])
	assert.Equal(t, "Line Bot", cert["project_title"])
}
