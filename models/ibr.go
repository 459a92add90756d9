package models

import (
	"time"

	"github.com/google/uuid"
)

type IBRStatus string

const (
	IBRSubmitted         IBRStatus = "SUBMITTED"
	IBRReviewing         IBRStatus = "REVIEWING"
	IBRDocumentsRequired IBRStatus = "DOCUMENTS_REQUIRED"
	IBRInProgress        IBRStatus = "IN_PROGRESS"
	IBRApproved          IBRStatus = "APPROVED"
	IBRRejected          IBRStatus = "REJECTED"
)

// ValidIBRStatus rejects anything outside the closed status set.
func ValidIBRStatus(s IBRStatus) bool {
	switch s {
	case IBRSubmitted, IBRReviewing, IBRDocumentsRequired, IBRInProgress, IBRApproved, IBRRejected:
		return true
	}
	return false
}

// IBRApplication tracks a student's India Book of Records submission for
// one project. One application per project.
type IBRApplication struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	Student           User       `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"-"`
	ProjectID         uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"project_id"`
	Project           Project    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;" json:"-"`
	Status            IBRStatus  `gorm:"type:varchar(30);not null;default:'SUBMITTED'" json:"status"`
	Progress          int        `gorm:"not null;default:10" json:"progress"`
	AdminNotes        string     `gorm:"type:text" json:"admin_notes"`
	RequiredDocuments []string   `gorm:"serializer:json" json:"required_documents"`
	AppliedAt         time.Time  `gorm:"autoCreateTime" json:"applied_at"`
	ApprovedAt        *time.Time `json:"approved_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
