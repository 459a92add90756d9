package models

import (
	"time"

	"github.com/google/uuid"
)

type AwardType string

const (
	AwardFirstProject AwardType = "FIRST_PROJECT"
	AwardFiveProjects AwardType = "FIVE_PROJECTS"
	AwardTenProjects  AwardType = "TEN_PROJECTS"
)

// Award is a badge on a student's profile. Milestone awards carry the
// award_type discriminator; the unique index makes a second grant of the
// same milestone a duplicate-key error instead of a second row. Manual
// admin awards leave award_type NULL, so a student can hold any number
// of them.
type Award struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_student_award_type" json:"student_id"`
	Student     User       `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"-"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	AwardType   *AwardType `gorm:"type:varchar(30);uniqueIndex:idx_student_award_type" json:"award_type"`
	IssuedBy    *uuid.UUID `gorm:"type:uuid" json:"issued_by"` // nil = system-generated
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
