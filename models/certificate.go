package models

import (
	"time"

	"github.com/google/uuid"
)

type CertificateType string

const (
	CertStemOrg    CertificateType = "STEM_ORG"
	CertIBR        CertificateType = "IBR"
	CertCompletion CertificateType = "COMPLETION"
)

type Certificate struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_student_project_cert" json:"student_id"`
	Student          User            `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;" json:"-"`
	ProjectID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_student_project_cert" json:"project_id"`
	Project          Project         `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;" json:"-"`
	CertificateType  CertificateType `gorm:"type:varchar(20);not null;uniqueIndex:idx_student_project_cert" json:"certificate_type"`
	CertificateNo    string          `gorm:"size:100;uniqueIndex;not null" json:"certificate_no"`
	VerificationCode string          `gorm:"size:64;uniqueIndex;not null" json:"verification_code"`
	IssuedAt         time.Time       `gorm:"autoCreateTime" json:"issued_at"`
}
