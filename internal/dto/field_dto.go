package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateFieldRequest struct {
	Name                    string         `json:"name" validate:"required,max=100"`
	Label                   string         `json:"label" validate:"required,max=255"`
	Description             string         `json:"description" validate:"max=500"`
	FieldType               string         `json:"field_type" validate:"required"`
	Category                string         `json:"category" validate:"required,max=50"`
	Config                  datatypes.JSON `json:"config"`
	Validation              datatypes.JSON `json:"validation"`
	SortOrder               *int           `json:"sort_order"`
	SpecialPersonalInfo     bool           `json:"special_personal_info"`
	RequiresExplicitConsent bool           `json:"requires_explicit_consent"`

	// Position the field (and, for address types, its whole linked group)
	// after an existing field instead of appending at the category tail.
	InsertAfterFieldID *uuid.UUID `json:"insert_after_field_id"`
}

type UpdateFieldRequest struct {
	Label                   *string         `json:"label" validate:"omitempty,max=255"`
	Description             *string         `json:"description" validate:"omitempty,max=500"`
	Category                *string         `json:"category" validate:"omitempty,max=50"`
	Config                  *datatypes.JSON `json:"config"`
	Validation              *datatypes.JSON `json:"validation"`
	IsActive                *bool           `json:"is_active"`
	SpecialPersonalInfo     *bool           `json:"special_personal_info"`
	RequiresExplicitConsent *bool           `json:"requires_explicit_consent"`
}

type ReorderFieldsRequest struct {
	Category string      `json:"category" validate:"required"`
	FieldIDs []uuid.UUID `json:"field_ids" validate:"required,min=1"`
}
