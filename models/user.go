package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleStudent UserRole = "STUDENT"
)

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName  string     `gorm:"size:150;not null" json:"full_name"`
	Email     string     `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"type:text;not null" json:"-"`
	Role      UserRole   `gorm:"type:varchar(20);not null;default:'STUDENT'" json:"role"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
	Phone     string     `gorm:"size:20" json:"phone"`
	School    string     `gorm:"size:200" json:"school"`
	Grade     string     `gorm:"size:50" json:"grade"`
	City      string     `gorm:"size:100" json:"city"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Projects     []Project     `gorm:"foreignKey:StudentID" json:"projects,omitempty"`
	Awards       []Award       `gorm:"foreignKey:StudentID" json:"awards,omitempty"`
	Certificates []Certificate `gorm:"foreignKey:StudentID" json:"certificates,omitempty"`
}

// Expired reports whether the account has passed its expiry timestamp.
func (u *User) Expired() bool {
	return u.ExpiresAt != nil && time.Now().After(*u.ExpiresAt)
}
