package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lottie128/stem-mentor-platform-sub000/config"
)

func HealthCheck(c *gin.Context) {
	sqlDB, err := config.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
