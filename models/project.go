package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	StatusPendingReview ProjectStatus = "PENDING_REVIEW"
	StatusPlanReady     ProjectStatus = "PLAN_READY"
	StatusInProgress    ProjectStatus = "IN_PROGRESS"
	StatusCompleted     ProjectStatus = "COMPLETED"
)

type Project struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"student_id"`
	Student         User          `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"-"`
	Title           string        `gorm:"size:255;not null" json:"title"`
	ProjectType     string        `gorm:"size:100;not null" json:"project_type"`
	Purpose         string        `gorm:"type:text" json:"purpose"`
	ExperienceLevel string        `gorm:"size:50" json:"experience_level"`
	AvailableTools  string        `gorm:"type:text" json:"available_tools"`
	BudgetRange     string        `gorm:"size:50" json:"budget_range"`
	Deadline        *time.Time    `json:"deadline"`
	IsPublic        bool          `gorm:"not null;default:false" json:"is_public"`
	Status          ProjectStatus `gorm:"type:varchar(20);not null;default:'PENDING_REVIEW'" json:"status"`
	CompletedAt     *time.Time    `json:"completed_at"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	Plan *ProjectPlan `gorm:"foreignKey:ProjectID" json:"plan,omitempty"`
}
