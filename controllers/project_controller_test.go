package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// testRouter wires a student router with a stubbed auth context. The db is
// only touched by paths that get past validation, so handlers under test here
// never reach it.
func testRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("db", db)
		c.Set("user_id", userID)
		c.Set("role", "STUDENT")
		c.Next()
	})
	r.POST("/projects", CreateProject)
	r.PATCH("/projects/:id/steps/:stepIndex", UpdateStepStatus)
	return r
}

func TestCreateProjectValidation(t *testing.T) {
	r := testRouter(nil, uuid.New().String())

	// Missing required fields.
	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(`{"title": "Line Bot"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestUpdateStepStatusRejectsUnknownStatus(t *testing.T) {
	r := testRouter(nil, uuid.New().String())

	body := `{"status": "finished"}`
	req := httptest.NewRequest(http.MethodPatch, "/projects/"+uuid.New().String()+"/steps/0", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not_started, in_progress or done")
}

func TestUpdateStepStatusRejectsBadStepIndex(t *testing.T) {
	r := testRouter(nil, uuid.New().String())

	req := httptest.NewRequest(http.MethodPatch, "/projects/"+uuid.New().String()+"/steps/abc", strings.NewReader(`{"status": "done"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStepStatusRejectsBadProjectID(t *testing.T) {
	r := testRouter(nil, uuid.New().String())

	req := httptest.NewRequest(http.MethodPatch, "/projects/not-a-uuid/steps/0", strings.NewReader(`{"status": "done"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
