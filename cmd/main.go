package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Lottie128/stem-mentor-platform-sub000/config"
	"github.com/Lottie128/stem-mentor-platform-sub000/routes"
	"github.com/Lottie128/stem-mentor-platform-sub000/services"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	config.InitDB()

	// One Gemini client for the process; without a key the planner just
	// serves the deterministic templates.
	gemini, err := services.NewGemini(context.Background(), os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		log.Println("Gemini unavailable, plan generation falls back to templates:", err)
	} else {
		defer gemini.Close()
	}
	planner := services.NewPlanGenerator(gemini)

	r := gin.Default()

	frontendOrigin := os.Getenv("FRONTEND_ORIGIN")
	if frontendOrigin == "" {
		frontendOrigin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r = routes.SetupRouter(r, config.DB, planner)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server running at Port:" + port)
	r.Run(":" + port)
}
