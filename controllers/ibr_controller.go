package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
	"github.com/Lottie128/stem-mentor-platform-sub000/services"
	"github.com/Lottie128/stem-mentor-platform-sub000/ws"
)

// ApplyForIBR opens an India Book of Records application for one of the
// student's projects. One application per project.
func ApplyForIBR(c *gin.Context) {
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

	var project models.Project
	if err := db.First(&project, "id = ? AND student_id = ?", projectID, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	application := models.IBRApplication{
		StudentID: studentID,
		ProjectID: projectID,
		Status:    models.IBRSubmitted,
		Progress:  services.ProgressForIBRStatus(models.IBRSubmitted),
	}
	if err := db.Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "an application already exists for this project"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "application submitted",
		"application": application,
	})
}

func GetMyIBRApplications(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID := c.GetString("user_id")

	var applications []models.IBRApplication
	if err := db.Preload("Project").
		Where("student_id = ?", studentID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func AdminListIBRApplications(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Preload("Project").Preload("Student").Order("applied_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []models.IBRApplication
	if err := query.Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

type UpdateIBRStatusInput struct {
	Status            models.IBRStatus `json:"status" binding:"required"`
	AdminNotes        string           `json:"admin_notes"`
	RequiredDocuments interface{}      `json:"required_documents"`
	Progress          *int             `json:"progress"`
}

// AdminUpdateIBRStatus sets any status (the review flow is admin-driven, not
// graph-enforced) and applies the fixed status-to-progress mapping. A direct
// progress value in the body overrides the mapped one.
func AdminUpdateIBRStatus(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	applicationID := c.Param("id")

	var input UpdateIBRStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidIBRStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown application status"})
		return
	}

	var application models.IBRApplication
	if err := db.First(&application, "id = ?", applicationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}

	application.Status = input.Status
	application.Progress = services.ProgressForIBRStatus(input.Status)
	if input.Progress != nil {
		application.Progress = *input.Progress
	}
	if input.AdminNotes != "" {
		application.AdminNotes = input.AdminNotes
	}
	if input.RequiredDocuments != nil {
		application.RequiredDocuments = services.NormalizeRequiredDocuments(input.RequiredDocuments)
	}
	if input.Status == models.IBRApproved && application.ApprovedAt == nil {
		now := time.Now()
		application.ApprovedAt = &now
	}

	if err := db.Save(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update application"})
		return
	}

	go ws.SendUserEvent(application.StudentID.String(), "ibr_status_changed", string(application.Status))

	c.JSON(http.StatusOK, gin.H{
		"message":     "application updated",
		"application": application,
	})
}
