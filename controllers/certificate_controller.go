package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
	"github.com/Lottie128/stem-mentor-platform-sub000/services"
)

func GetMyCertificates(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID := c.GetString("user_id")

	var certs []models.Certificate
	if err := db.Preload("Project").
		Where("student_id = ?", studentID).
		Order("issued_at DESC").
		Find(&certs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load certificates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"certificates": certs})
}

// DownloadCertificatePDF renders the student's certificate on the fly.
func DownloadCertificatePDF(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	studentID := c.GetString("user_id")
	certID := c.Param("id")

	var cert models.Certificate
	if err := db.Preload("Student").Preload("Project").
		First(&cert, "id = ? AND student_id = ?", certID, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "certificate not found"})
		return
	}

	pdfBytes, err := services.RenderCertificatePDF(cert, cert.Student.FullName, cert.Project.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot render certificate"})
		return
	}

	filename := fmt.Sprintf("certificate-%s.pdf", cert.CertificateNo)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// VerifyCertificate is the public authenticity check by verification code.
func VerifyCertificate(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	code := c.Param("code")

	var cert models.Certificate
	if err := db.Preload("Student").Preload("Project").
		First(&cert, "verification_code = ?", code).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "certificate not found", "valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"certificate": gin.H{
			"certificate_no":   cert.CertificateNo,
			"certificate_type": cert.CertificateType,
			"student_name":     cert.Student.FullName,
			"project_title":    cert.Project.Title,
			"issued_at":        cert.IssuedAt,
		},
	})
}
