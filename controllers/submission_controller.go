package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
	"github.com/Lottie128/stem-mentor-platform-sub000/utils"
)

// SubmitStepEvidence upserts the evidence record for one step: a video link,
// optional notes and an optional image uploaded to Supabase Storage. The
// (project, step) unique index plus ON CONFLICT keeps it at one row per step.
func SubmitStepEvidence(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID := c.GetString("user_id")

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

	var project models.Project
	if err := db.Preload("Plan").
		First(&project, "id = ? AND student_id = ?", projectID, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	if project.Plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project has no plan"})
		return
	}
	if stepIndex < 0 || stepIndex >= len(project.Plan.Steps) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "step index out of range"})
		return
	}

	videoURL := c.PostForm("video_url")
	notes := c.PostForm("notes")

	// Plan steps are numbered from 1; the URL index is 0-based.
	stepNumber := stepIndex + 1

	var previous models.StepSubmission
	hadPrevious := db.First(&previous, "project_id = ? AND step_number = ?", projectID, stepNumber).Error == nil

	imagesURL := ""
	if fileHeader, err := c.FormFile("image"); err == nil {
		fileID := uuid.New().String()
		imagesURL, err = utils.UploadEvidenceToSupabase(fileHeader, fileID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot upload evidence image"})
			return
		}
	}
	// Resubmitting without a new image keeps the existing one.
	if imagesURL == "" && hadPrevious {
		imagesURL = previous.ImagesURL
	}

	submission := models.StepSubmission{
		ProjectID:  projectID,
		StepNumber: stepNumber,
		VideoURL:   videoURL,
		ImagesURL:  imagesURL,
		Notes:      notes,
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "step_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"video_url", "images_url", "notes", "updated_at"}),
	}).Create(&submission).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save submission"})
		return
	}

	// A replaced image would otherwise stay orphaned in storage.
	if hadPrevious && previous.ImagesURL != "" && previous.ImagesURL != imagesURL {
		go func(old string) {
			if err := utils.DeleteFileFromSupabase(old); err != nil {
				log.Println("cannot delete replaced evidence image:", err)
			}
		}(previous.ImagesURL)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "evidence submitted",
		"submission": submission,
	})
}

func GetProjectSubmissions(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID := c.GetString("user_id")
	projectID := c.Param("id")

	var project models.Project
	if err := db.First(&project, "id = ? AND student_id = ?", projectID, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	var submissions []models.StepSubmission
	if err := db.Where("project_id = ?", projectID).
		Order("step_number ASC").
		Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}
