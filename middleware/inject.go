package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lottie128/stem-mentor-platform-sub000/services"
)

// DBMiddleware puts the shared *gorm.DB on the request context so handlers
// can grab it with c.MustGet("db").
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

// PlannerMiddleware injects the plan generator built once at startup.
func PlannerMiddleware(p *services.PlanGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("planner", p)
		c.Next()
	}
}
