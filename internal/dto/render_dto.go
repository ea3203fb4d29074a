package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/clinicpass/clinicpass-backend/internal/fieldtypes"
)

// RenderedForm is the public GET payload: the template plus a fully
// reconstructed section/group layout. No layout tree is persisted; this is
// rebuilt from the FormField associations on every fetch.
type RenderedForm struct {
	ID                     uuid.UUID         `json:"id"`
	Title                  string            `json:"title"`
	Description            string            `json:"description"`
	OrganizationName       string            `json:"organization_name"`
	Version                int               `json:"version"`
	ConsentClause          *string           `json:"consent_clause"`
	ConsentDurationEnabled bool              `json:"consent_duration_enabled"`
	ConsentDurationOptions []string          `json:"consent_duration_options,omitempty"`
	ConsentDurationDefault string            `json:"consent_duration_default,omitempty"`
	RequiresSignature      bool              `json:"requires_signature"`
	Sections               []RenderedSection `json:"sections"`

	// Prefill carries the authenticated user's canonical profile values for
	// the fields present on this form. Empty for anonymous fetches.
	Prefill map[string]interface{} `json:"prefill,omitempty"`
}

type RenderedSection struct {
	Title string         `json:"title"`
	Items []RenderedItem `json:"items"`
}

// RenderedItem is either one standalone field or one address group; exactly
// one of Field/Group is set.
type RenderedItem struct {
	Kind  string         `json:"kind"` // "field" or "group"
	Field *RenderedField `json:"field,omitempty"`
	Group *RenderedGroup `json:"group,omitempty"`
}

type RenderedField struct {
	Name                    string              `json:"name"`
	Label                   string              `json:"label"`
	HelpText                string              `json:"help_text,omitempty"`
	FieldType               string              `json:"field_type"`
	IsRequired              bool                `json:"is_required"`
	ColumnSpan              int                 `json:"column_span"`
	Options                 []fieldtypes.Option `json:"options,omitempty"`
	Validation              datatypes.JSON      `json:"validation,omitempty"`
	SpecialPersonalInfo     bool                `json:"special_personal_info,omitempty"`
	RequiresExplicitConsent bool                `json:"requires_explicit_consent,omitempty"`
}

// RenderedGroup is an address parent with its linked fields, rendered as one
// full-width bordered unit.
type RenderedGroup struct {
	Parent RenderedField   `json:"parent"`
	Linked []RenderedField `json:"linked"`
}
