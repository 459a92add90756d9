package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func submissionTestRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("db", db)
		c.Set("user_id", userID)
		c.Set("role", "STUDENT")
		c.Next()
	})
	r.POST("/projects/:id/steps/:stepIndex/submission", SubmitStepEvidence)
	return r
}

const planStepsDoc = `[
	{"step_number": 1, "title": "Plan the build", "tag": "home", "status": "not_started"},
	{"step_number": 2, "title": "Assemble", "tag": "center", "status": "not_started"}
]`

func expectProjectWithPlan(mock sqlmock.Sqlmock, projectID, studentID uuid.UUID) {
	mock.ExpectQuery(`SELECT (.+) FROM "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "title", "status"}).
			AddRow(projectID.String(), studentID.String(), "Line Bot", "IN_PROGRESS"))
	mock.ExpectQuery(`SELECT (.+) FROM "project_plans"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "steps", "version"}).
			AddRow(uuid.New().String(), projectID.String(), planStepsDoc, 1))
}

// The URL carries a 0-based step index while plan steps and submission rows
// are numbered from 1.
func TestSubmitStepEvidenceStoresOneBasedStepNumber(t *testing.T) {
	db, mock := newMockDB(t)

	projectID := uuid.New()
	studentID := uuid.New()
	expectProjectWithPlan(mock, projectID, studentID)

	mock.ExpectQuery(`SELECT (.+) FROM "step_submissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "step_number"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "step_submissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	form := url.Values{"video_url": {"https://youtu.be/abc"}, "notes": {"first step done"}}
	req := httptest.NewRequest(http.MethodPost,
		"/projects/"+projectID.String()+"/steps/0/submission",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	submissionTestRouter(db, studentID.String()).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	submission := body["submission"].(map[string]interface{})
	assert.Equal(t, float64(1), submission["step_number"])
}

// Resubmitting notes without attaching a new image keeps the image from the
// previous submission instead of blanking it.
func TestSubmitStepEvidenceKeepsExistingImage(t *testing.T) {
	db, mock := newMockDB(t)

	projectID := uuid.New()
	studentID := uuid.New()
	expectProjectWithPlan(mock, projectID, studentID)

	oldImage := "https://proj.supabase.co/storage/v1/object/public/uploads/evidence/old.jpg"
	mock.ExpectQuery(`SELECT (.+) FROM "step_submissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "step_number", "video_url", "images_url"}).
			AddRow(uuid.New().String(), projectID.String(), 1, "https://youtu.be/abc", oldImage))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "step_submissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	form := url.Values{"notes": {"updated notes"}}
	req := httptest.NewRequest(http.MethodPost,
		"/projects/"+projectID.String()+"/steps/0/submission",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	submissionTestRouter(db, studentID.String()).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	submission := body["submission"].(map[string]interface{})
	assert.Equal(t, oldImage, submission["images_url"])
}

func TestSubmitStepEvidenceRejectsOutOfRangeStep(t *testing.T) {
	db, mock := newMockDB(t)

	projectID := uuid.New()
	studentID := uuid.New()
	expectProjectWithPlan(mock, projectID, studentID)

	req := httptest.NewRequest(http.MethodPost,
		"/projects/"+projectID.String()+"/steps/7/submission", nil)
	w := httptest.NewRecorder()
	submissionTestRouter(db, studentID.String()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
