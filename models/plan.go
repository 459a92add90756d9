package models

import (
	"time"

	"github.com/google/uuid"
)

type StepStatus string

const (
	StepNotStarted StepStatus = "not_started"
	StepInProgress StepStatus = "in_progress"
	StepDone       StepStatus = "done"
)

// ValidStepStatus rejects anything outside the closed status set.
func ValidStepStatus(s StepStatus) bool {
	switch s {
	case StepNotStarted, StepInProgress, StepDone:
		return true
	}
	return false
}

type StepTag string

const (
	TagHome   StepTag = "home"   // can be done unsupervised at home
	TagCenter StepTag = "center" // needs supervision at the center
)

type PlanComponent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Cost        string `json:"cost"`
}

type PlanStep struct {
	StepNumber  int        `json:"step_number"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tag         StepTag    `json:"tag"`
	Status      StepStatus `json:"status"`
}

// ProjectPlan stores components and steps as whole JSON documents. Every
// step-status change rewrites the steps document; the version column guards
// against two requests overwriting each other.
type ProjectPlan struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID   uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"project_id"`
	Project     Project         `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;" json:"-"`
	Components  []PlanComponent `gorm:"serializer:json" json:"components"`
	Steps       []PlanStep      `gorm:"serializer:json" json:"steps"`
	SafetyNotes string          `gorm:"type:text" json:"safety_notes"`
	AIGenerated bool            `gorm:"not null;default:false" json:"ai_generated"`
	Version     int             `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
