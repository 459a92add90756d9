package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
	"github.com/Lottie128/stem-mentor-platform-sub000/services"
	"github.com/Lottie128/stem-mentor-platform-sub000/ws"
)

// AdminListProjects lists projects for review, optionally filtered by status.
func AdminListProjects(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Preload("Plan").Preload("Student").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GeneratePlan produces (or regenerates) a project's build plan via the plan
// provider and moves a pending project to PLAN_READY. Provider failures are
// absorbed by the deterministic fallback, so this never returns an upstream
// error to the admin.
func GeneratePlan(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	planner := c.MustGet("planner").(*services.PlanGenerator)
	projectID := c.Param("id")

	var project models.Project
	if err := db.Preload("Plan").First(&project, "id = ?", projectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	generated := planner.Generate(c.Request.Context(), project)

	var plan models.ProjectPlan
	status := http.StatusOK
	if project.Plan != nil {
		// Regeneration replaces the documents and bumps the version.
		plan = *project.Plan
		plan.Components = generated.Components
		plan.Steps = generated.Steps
		plan.SafetyNotes = generated.SafetyNotes
		plan.AIGenerated = generated.AIGenerated
		plan.Version = project.Plan.Version + 1
		if err := db.Model(&models.ProjectPlan{}).
			Select("components", "steps", "safety_notes", "ai_generated", "version").
			Where("id = ?", plan.ID).
			Updates(plan).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update plan"})
			return
		}
	} else {
		plan = models.ProjectPlan{
			ProjectID:   project.ID,
			Components:  generated.Components,
			Steps:       generated.Steps,
			SafetyNotes: generated.SafetyNotes,
			AIGenerated: generated.AIGenerated,
			Version:     1,
		}
		if err := db.Create(&plan).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create plan"})
			return
		}
		status = http.StatusCreated
	}

	if project.Status == models.StatusPendingReview {
		if err := db.Model(&project).Update("status", models.StatusPlanReady).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update project status"})
			return
		}
		project.Status = models.StatusPlanReady
		go ws.SendProjectStatusUpdate(project.ID.String(), string(project.Status), 0)
	}

	c.JSON(status, gin.H{
		"message": "plan ready",
		"plan":    plan,
		"project": project,
	})
}

func AdminGetPlan(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	projectID := c.Param("id")

	var plan models.ProjectPlan
	if err := db.First(&plan, "project_id = ?", projectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
