package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
	"github.com/Lottie128/stem-mentor-platform-sub000/ws"
)

func GetMyAwards(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID := c.GetString("user_id")

	var awards []models.Award
	if err := db.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&awards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load awards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"awards": awards})
}

type GrantAwardInput struct {
	StudentID   string `json:"student_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// AdminGrantAward creates a manual award. Manual awards have no award_type
// discriminator, so an admin can grant any number of them.
func AdminGrantAward(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	adminID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var input GrantAwardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	studentID, err := uuid.Parse(input.StudentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	var student models.User
	if err := db.First(&student, "id = ? AND role = ?", studentID, models.RoleStudent).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}

	award := models.Award{
		StudentID:   studentID,
		Title:       input.Title,
		Description: input.Description,
		IssuedBy:    &adminID,
	}
	if err := db.Create(&award).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create award"})
		return
	}

	go ws.SendUserEvent(studentID.String(), "award_granted", award.Title)

	c.JSON(http.StatusCreated, gin.H{
		"message": "award granted",
		"award":   award,
	})
}
