package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
	"github.com/Lottie128/stem-mentor-platform-sub000/services"
)

type CreateProjectInput struct {
	Title           string     `json:"title" binding:"required"`
	ProjectType     string     `json:"type" binding:"required"`
	Purpose         string     `json:"purpose" binding:"required"`
	ExperienceLevel string     `json:"experience_level" binding:"required"`
	AvailableTools  string     `json:"available_tools"`
	BudgetRange     string     `json:"budget_range" binding:"required"`
	Deadline        *time.Time `json:"deadline"`
}

func CreateProject(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var input CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := models.Project{
		StudentID:       studentID,
		Title:           input.Title,
		ProjectType:     input.ProjectType,
		Purpose:         input.Purpose,
		ExperienceLevel: input.ExperienceLevel,
		AvailableTools:  input.AvailableTools,
		BudgetRange:     input.BudgetRange,
		Deadline:        input.Deadline,
		Status:          models.StatusPendingReview,
	}

	if err := db.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "project submitted for review",
		"project": project,
	})
}

func GetMyProjects(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID := c.GetString("user_id")

	var projects []models.Project
	if err := db.Preload("Plan").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func GetProjectDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID := c.GetString("user_id")
	projectID := c.Param("id")

	var project models.Project
	if err := db.Preload("Plan").
		First(&project, "id = ? AND student_id = ?", projectID, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

type UpdateStepStatusInput struct {
	Status models.StepStatus `json:"status" binding:"required"`
}

// UpdateStepStatus is the student's main interaction during a build: mark a
// step's progress and let the lifecycle derive the project transition.
func UpdateStepStatus(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	studentID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	stepIndex, err := strconv.Atoi(c.Param("stepIndex"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid step index"})
		return
	}

	var input UpdateStepStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStepStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be not_started, in_progress or done"})
		return
	}

	project, err := services.RecordStepStatus(db, projectID, studentID, stepIndex, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound), errors.Is(err, services.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrStepOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrUpdateConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "project was updated concurrently, please retry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update step"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

type VisibilityInput struct {
	IsPublic *bool `json:"is_public" binding:"required"`
}

func ToggleProjectVisibility(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID := c.GetString("user_id")
	projectID := c.Param("id")

	var input VisibilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project
	if err := db.First(&project, "id = ? AND student_id = ?", projectID, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	if err := db.Model(&project).Update("is_public", *input.IsPublic).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update visibility"})
		return
	}

	project.IsPublic = *input.IsPublic
	c.JSON(http.StatusOK, gin.H{"project": project})
}
