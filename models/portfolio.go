package models

import (
	"time"

	"github.com/google/uuid"
)

type Portfolio struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID   uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null" json:"student_id"`
	Student     User              `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"-"`
	Slug        string            `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Bio         string            `gorm:"type:text" json:"bio"`
	Skills      []string          `gorm:"serializer:json" json:"skills"`
	SocialLinks map[string]string `gorm:"serializer:json" json:"social_links"`
	IsPublic    bool              `gorm:"not null;default:true" json:"is_public"`
	Theme       string            `gorm:"size:50;default:'default'" json:"theme"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}
