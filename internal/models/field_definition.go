package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Field categories, tiered core/industry. Kept as strings rather than a
// lookup table; the seed data establishes the canonical set.
const (
	CategoryPersonal       = "personal"
	CategoryContact        = "contact"
	CategoryAddress        = "address"
	CategoryIdentity       = "identity"
	CategoryEmergency      = "emergency"
	CategoryMedicalAid     = "medicalAid"
	CategoryMedicalHistory = "medicalHistory"
	CategoryConsent        = "consent"
	CategoryEmployment     = "employment"
	CategoryNextOfKin      = "nextOfKin"
	CategoryLifestyle      = "lifestyle"
	CategoryDental         = "dental"
	CategoryOptometry      = "optometry"
	CategoryPhysio         = "physiotherapy"
	CategoryPediatric      = "pediatric"
	CategoryCustom         = "custom"
)

// FieldDefinition is one reusable entry in the shared field library.
// Config and Validation are opaque jsonb blobs decoded through the
// fieldtypes registry; Name is the stable key submissions and profiles
// are stored under.
type FieldDefinition struct {
	ID                      uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                    string         `gorm:"not null;size:100;uniqueIndex" json:"name"`
	Label                   string         `gorm:"not null;size:255" json:"label"`
	Description             string         `gorm:"size:500" json:"description"`
	FieldType               string         `gorm:"not null;size:30;index" json:"field_type"`
	Category                string         `gorm:"not null;size:50;index" json:"category"`
	Config                  datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"config"`
	Validation              datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"validation"`
	SortOrder               int            `gorm:"not null;default:0;index" json:"sort_order"`
	IsActive                bool           `gorm:"not null;default:true" json:"is_active"`
	SpecialPersonalInfo     bool           `gorm:"not null;default:false" json:"special_personal_info"`
	RequiresExplicitConsent bool           `gorm:"not null;default:false" json:"requires_explicit_consent"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
}

func (FieldDefinition) TableName() string {
	return "field_definitions"
}
