package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OrgStatusPending  = "pending"
	OrgStatusApproved = "approved"
	OrgStatusRejected = "rejected"
)

const (
	MemberRoleOwner = "owner"
	MemberRoleStaff = "staff"
)

// Organization is a healthcare provider (clinic/practice). New registrations
// start pending and must be approved by a platform admin before the
// organization can publish forms.
type Organization struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string         `gorm:"not null;size:255" json:"name"`
	PracticeNumber string         `gorm:"size:50" json:"practice_number"`
	ContactEmail   string         `gorm:"size:255" json:"contact_email"`
	ContactPhone   string         `gorm:"size:50" json:"contact_phone"`
	Address        string         `gorm:"size:500" json:"address"`
	Status         string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReviewNote     string         `gorm:"size:1000" json:"review_note,omitempty"`
	ReviewedAt     *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Organization) TableName() string {
	return "organizations"
}

// OrganizationMember links a provider-side user to an organization.
// Owners may edit the organization profile; staff may manage forms.
type OrganizationMember struct {
	ID             uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_org_member" json:"organization_id"`
	UserID         uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_org_member;index" json:"user_id"`
	Role           string       `gorm:"size:20;not null;default:'staff'" json:"role"`
	CreatedAt      time.Time    `json:"created_at"`
	Organization   Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	User           User         `gorm:"foreignKey:UserID" json:"-"`
}

func (OrganizationMember) TableName() string {
	return "organization_members"
}

// PendingRegistration stages provider sign-up data keyed by email before the
// account exists. complete-registration consumes it.
type PendingRegistration struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Payload   datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (PendingRegistration) TableName() string {
	return "pending_registrations"
}
