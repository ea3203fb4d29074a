package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QRCode resolves a short code to exactly one form template. ScanCount is
// bumped on every public resolve.
type QRCode struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FormTemplateID uuid.UUID      `gorm:"type:uuid;not null;index" json:"form_template_id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	ShortCode      string         `gorm:"not null;size:12;uniqueIndex" json:"short_code"`
	Label          string         `gorm:"size:255" json:"label"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
	ScanCount      int64          `gorm:"not null;default:0" json:"scan_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	FormTemplate   FormTemplate   `gorm:"foreignKey:FormTemplateID" json:"-"`
}

func (QRCode) TableName() string {
	return "qr_codes"
}
