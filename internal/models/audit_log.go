package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Audit actions. Every mutating admin/provider endpoint records exactly one.
const (
	AuditFieldCreate      = "field.create"
	AuditFieldUpdate      = "field.update"
	AuditFieldDelete      = "field.delete"
	AuditFieldDeactivate  = "field.deactivate"
	AuditFieldReorder     = "field.reorder"
	AuditFormCreate       = "form.create"
	AuditFormUpdate       = "form.update"
	AuditFormDelete       = "form.delete"
	AuditFormDocuseal     = "form.docuseal"
	AuditQRCreate         = "qr.create"
	AuditQRUpdate         = "qr.update"
	AuditQRDelete         = "qr.delete"
	AuditOrgUpdate        = "org.update"
	AuditOrgReview        = "org.review"
	AuditSubmissionCreate = "submission.create"
)

// AuditLog is an append-only record of who did what to which resource.
type AuditLog struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ActorID      *uuid.UUID     `gorm:"type:uuid;index" json:"actor_id,omitempty"`
	ActorEmail   string         `gorm:"size:255;index" json:"actor_email"`
	Action       string         `gorm:"not null;size:50;index" json:"action"`
	ResourceType string         `gorm:"not null;size:50;index" json:"resource_type"`
	ResourceID   string         `gorm:"size:64;index" json:"resource_id"`
	Metadata     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	IPAddress    string         `gorm:"size:45" json:"ip_address"`
	UserAgent    string         `gorm:"size:500" json:"user_agent"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
