package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateFormRequest struct {
	Title         string  `json:"title" validate:"required,max=255"`
	Description   string  `json:"description" validate:"max=1000"`
	ConsentClause *string `json:"consent_clause"`
}

// UpdateFormRequest replaces the template's metadata and, when Fields is
// non-nil, its entire FormField set (version bump).
type UpdateFormRequest struct {
	Title         *string `json:"title" validate:"omitempty,max=255"`
	Description   *string `json:"description" validate:"omitempty,max=1000"`
	ConsentClause *string `json:"consent_clause"`
	IsActive      *bool   `json:"is_active"`

	ConsentDurationEnabled *bool    `json:"consent_duration_enabled"`
	ConsentDurationOptions []string `json:"consent_duration_options"`
	ConsentDurationDefault *string  `json:"consent_duration_default"`

	Fields []FormFieldInput `json:"fields"`
}

type FormFieldInput struct {
	FieldDefinitionID uuid.UUID  `json:"field_definition_id" validate:"required"`
	LabelOverride     string     `json:"label_override" validate:"max=255"`
	HelpText          string     `json:"help_text" validate:"max=500"`
	IsRequired        bool       `json:"is_required"`
	SortOrder         int        `json:"sort_order"`
	Section           string     `json:"section" validate:"max=100"`
	ColumnSpan        int        `json:"column_span"`
	GroupID           *uuid.UUID `json:"group_id"`
}

type DocusealMappingRequest struct {
	TemplateID   string         `json:"template_id" validate:"required,max=100"`
	FieldMapping datatypes.JSON `json:"field_mapping"`
}
