package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
)

type UpsertPortfolioInput struct {
	Bio         string            `json:"bio"`
	Skills      []string          `json:"skills"`
	SocialLinks map[string]string `json:"social_links"`
	IsPublic    *bool             `json:"is_public"`
	Theme       string            `json:"theme"`
}

// UpsertMyPortfolio creates or updates the student's portfolio. The slug is
// minted once from the student's name and stays stable afterwards.
func UpsertMyPortfolio(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	studentID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var input UpsertPortfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var portfolio models.Portfolio
	err = db.First(&portfolio, "student_id = ?", studentID).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load portfolio"})
			return
		}

		var student models.User
		if err := db.First(&student, "id = ?", studentID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		slugVal, err := uniqueSlug(db, student.FullName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot allocate portfolio slug"})
			return
		}

		portfolio = models.Portfolio{
			StudentID: studentID,
			Slug:      slugVal,
			IsPublic:  true,
			Theme:     "default",
		}
	}

	portfolio.Bio = input.Bio
	if input.Skills != nil {
		portfolio.Skills = input.Skills
	}
	if input.SocialLinks != nil {
		portfolio.SocialLinks = input.SocialLinks
	}
	if input.IsPublic != nil {
		portfolio.IsPublic = *input.IsPublic
	}
	if input.Theme != "" {
		portfolio.Theme = input.Theme
	}

	if err := db.Save(&portfolio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save portfolio"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// uniqueSlug appends a counter until the slug is free.
func uniqueSlug(db *gorm.DB, fullName string) (string, error) {
	base := slug.Make(fullName)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := db.Model(&models.Portfolio{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// GetPublicPortfolio is the unauthenticated portfolio page: public projects,
// certificates and awards for one student. Private projects never appear.
func GetPublicPortfolio(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	slugParam := c.Param("slug")

	var portfolio models.Portfolio
	if err := db.Preload("Student").
		First(&portfolio, "slug = ? AND is_public = ?", slugParam, true).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "portfolio not found"})
		return
	}

	var projects []models.Project
	if err := db.Preload("Plan").
		Where("student_id = ? AND is_public = ?", portfolio.StudentID, true).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load projects"})
		return
	}

	var certificates []models.Certificate
	if err := db.Preload("Project").
		Where("student_id = ?", portfolio.StudentID).
		Order("issued_at DESC").
		Find(&certificates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load certificates"})
		return
	}

	var awards []models.Award
	if err := db.Where("student_id = ?", portfolio.StudentID).
		Order("created_at DESC").
		Find(&awards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load awards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"portfolio": gin.H{
			"slug":         portfolio.Slug,
			"bio":          portfolio.Bio,
			"skills":       portfolio.Skills,
			"social_links": portfolio.SocialLinks,
			"theme":        portfolio.Theme,
			"student_name": portfolio.Student.FullName,
		},
		"projects":     projects,
		"certificates": certificates,
		"awards":       awards,
	})
}
