package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FormTemplate is a provider-authored composition of field definitions.
// Version increments whenever the field set is replaced, never in place.
type FormTemplate struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	Title          string         `gorm:"not null;size:255" json:"title"`
	Description    string         `gorm:"size:1000" json:"description"`
	ConsentClause  *string        `gorm:"type:text" json:"consent_clause"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
	Version        int            `gorm:"not null;default:1" json:"version"`

	// Consent duration policy: when enabled, the patient picks how long the
	// consent remains valid from the configured options.
	ConsentDurationEnabled bool           `gorm:"not null;default:false" json:"consent_duration_enabled"`
	ConsentDurationOptions datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"consent_duration_options"`
	ConsentDurationDefault string         `gorm:"size:30" json:"consent_duration_default"`

	// Optional DocuSeal e-signature wiring.
	DocusealTemplateID   string         `gorm:"size:100" json:"docuseal_template_id,omitempty"`
	DocusealFieldMapping datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"docuseal_field_mapping,omitempty"`

	Fields []FormField `gorm:"foreignKey:FormTemplateID;constraint:OnDelete:CASCADE" json:"fields,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (FormTemplate) TableName() string {
	return "form_templates"
}

// FormField associates one FieldDefinition with one FormTemplate, carrying
// the per-form overrides. The whole set is deleted and recreated on every
// structural save.
type FormField struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FormTemplateID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"form_template_id"`
	FieldDefinitionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"field_definition_id"`
	LabelOverride     string          `gorm:"size:255" json:"label_override,omitempty"`
	HelpText          string          `gorm:"size:500" json:"help_text,omitempty"`
	IsRequired        bool            `gorm:"not null;default:false" json:"is_required"`
	SortOrder         int             `gorm:"not null;default:0" json:"sort_order"`
	Section           string          `gorm:"size:100" json:"section,omitempty"`
	ColumnSpan        int             `gorm:"not null;default:8" json:"column_span"`
	GroupID           *uuid.UUID      `gorm:"type:uuid;index" json:"group_id,omitempty"`
	FieldDefinition   FieldDefinition `gorm:"foreignKey:FieldDefinitionID" json:"field_definition,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (FormField) TableName() string {
	return "form_fields"
}

// EffectiveLabel returns the per-form label override when present, else the
// library label.
func (f *FormField) EffectiveLabel() string {
	if f.LabelOverride != "" {
		return f.LabelOverride
	}
	return f.FieldDefinition.Label
}
