package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lottie128/stem-mentor-platform-sub000/controllers"
	"github.com/Lottie128/stem-mentor-platform-sub000/middleware"
	"github.com/Lottie128/stem-mentor-platform-sub000/services"
	"github.com/Lottie128/stem-mentor-platform-sub000/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB, planner *services.PlanGenerator) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db))

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logingoogle", controllers.GoogleLogin)
		auth.POST("/change-password", middleware.AuthMiddleware(), controllers.ChangePassword)
	}

	// Public pages: portfolios and certificate verification need no auth.
	api.GET("/portfolio/:slug", controllers.GetPublicPortfolio)
	api.GET("/certificates/verify/:code", controllers.VerifyCertificate)

	student := api.Group("/student")
	{
		student.Use(middleware.AuthMiddleware(), middleware.RequireRoles("STUDENT"))

		student.POST("/projects", controllers.CreateProject)
		student.GET("/projects", controllers.GetMyProjects)
		student.GET("/projects/:id", controllers.GetProjectDetail)
		student.PATCH("/projects/:id/steps/:stepIndex", controllers.UpdateStepStatus)
		student.PATCH("/projects/:id/visibility", controllers.ToggleProjectVisibility)
		student.POST("/projects/:id/steps/:stepIndex/submission", controllers.SubmitStepEvidence)
		student.GET("/projects/:id/submissions", controllers.GetProjectSubmissions)

		student.GET("/awards", controllers.GetMyAwards)
		student.GET("/certificates", controllers.GetMyCertificates)
		student.GET("/certificates/:id/pdf", controllers.DownloadCertificatePDF)

		student.POST("/projects/:id/ibr", controllers.ApplyForIBR)
		student.GET("/ibr", controllers.GetMyIBRApplications)

		student.PUT("/portfolio", controllers.UpsertMyPortfolio)
	}

	admin := api.Group("/admin")
	{
		admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles("ADMIN"))

		// Project review & plan generation
		admin.GET("/projects", controllers.AdminListProjects)
		admin.POST("/projects/:id/plan", middleware.PlannerMiddleware(planner), controllers.GeneratePlan)
		admin.GET("/projects/:id/plan", controllers.AdminGetPlan)

		// IBR review
		admin.GET("/ibr/applications", controllers.AdminListIBRApplications)
		admin.PUT("/ibr/applications/:id/status", controllers.AdminUpdateIBRStatus)

		// Awards & accounts
		admin.POST("/awards", controllers.AdminGrantAward)
		admin.POST("/users", controllers.AdminCreateStudent)
		admin.GET("/users", controllers.AdminListUsers)
		admin.PATCH("/users/:id/toggle-active", controllers.AdminToggleUserActive)
	}

	r.GET("/ws/project/:id", ws.HandleProjectWebSocket)
	r.GET("/ws/user", ws.HandleUserWebSocket)

	return r
}
