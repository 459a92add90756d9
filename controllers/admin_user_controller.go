package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
	"github.com/Lottie128/stem-mentor-platform-sub000/utils"
)

type CreateStudentInput struct {
	FullName  string     `json:"full_name" binding:"required"`
	Email     string     `json:"email" binding:"required,email"`
	Password  string     `json:"password" binding:"required,min=6"`
	ExpiresAt *time.Time `json:"expires_at"`
	Phone     string     `json:"phone"`
	School    string     `json:"school"`
	Grade     string     `json:"grade"`
	City      string     `json:"city"`
}

// AdminCreateStudent provisions a student account, optionally with an expiry
// date for time-limited programs, and mails the credentials.
func AdminCreateStudent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot hash password"})
		return
	}

	newUser := models.User{
		FullName:  input.FullName,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      models.RoleStudent,
		IsActive:  true,
		ExpiresAt: input.ExpiresAt,
		Phone:     input.Phone,
		School:    input.School,
		Grade:     input.Grade,
		City:      input.City,
	}

	if err := db.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create account"})
		return
	}

	// Credentials email, off the request path.
	go func() {
		subject := "Your STEM mentoring account is ready"
		body := `
		<h3>Hello ` + input.FullName + `,</h3>
		<p>A student account has been created for you on the <b>STEM mentoring platform</b>.</p>
		<p><b>Login email:</b> ` + input.Email + `<br>
		<b>Password:</b> ` + input.Password + `</p>
		<p>Please log in and change your password after first use.</p>
		<hr>
		<p><i>This is an automated email, please do not reply.</i></p>
		`
		if err := utils.SendEmail(input.Email, subject, body); err != nil {
			log.Println("credentials email failed:", err)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"message": "student account created",
		"user": gin.H{
			"id":         newUser.ID,
			"full_name":  newUser.FullName,
			"email":      newUser.Email,
			"role":       newUser.Role,
			"expires_at": newUser.ExpiresAt,
		},
	})
}

func AdminListUsers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Order("created_at DESC")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// AdminToggleUserActive deactivates or reactivates an account. Accounts are
// never hard-deleted.
func AdminToggleUserActive(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.Param("id")

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := db.Model(&user).Update("is_active", !user.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update user"})
		return
	}

	user.IsActive = !user.IsActive
	c.JSON(http.StatusOK, gin.H{
		"message": "user updated",
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"is_active": user.IsActive,
		},
	})
}
