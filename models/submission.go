package models

import (
	"time"

	"github.com/google/uuid"
)

// StepSubmission is the evidence a student attaches to one plan step.
// One row per (project, step); resubmitting replaces the previous evidence.
type StepSubmission struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_step" json:"project_id"`
	Project     Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;" json:"-"`
	StepNumber  int       `gorm:"not null;uniqueIndex:idx_project_step" json:"step_number"`
	VideoURL    string    `gorm:"type:text" json:"video_url"`
	ImagesURL   string    `gorm:"type:text" json:"images_url"`
	Notes       string    `gorm:"type:text" json:"notes"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
