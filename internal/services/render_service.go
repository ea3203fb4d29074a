package services

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/fieldtypes"
	"github.com/clinicpass/clinicpass-backend/internal/models"
)

// RenderForm reconstructs the public payload for a template: section layout,
// address grouping and optional profile prefill. Layout is pure data
// transformation; nothing here touches the database.
func RenderForm(form *models.FormTemplate, orgName string, profile map[string]interface{}) *dto.RenderedForm {
	rendered := &dto.RenderedForm{
		ID:                     form.ID,
		Title:                  form.Title,
		Description:            form.Description,
		OrganizationName:       orgName,
		Version:                form.Version,
		ConsentClause:          form.ConsentClause,
		ConsentDurationEnabled: form.ConsentDurationEnabled,
		ConsentDurationDefault: form.ConsentDurationDefault,
		RequiresSignature:      form.DocusealTemplateID != "",
		Sections:               BuildSections(form.Fields),
	}

	if form.ConsentDurationEnabled && len(form.ConsentDurationOptions) > 0 {
		var options []string
		if err := json.Unmarshal(form.ConsentDurationOptions, &options); err == nil {
			rendered.ConsentDurationOptions = options
		}
	}

	if profile != nil {
		prefill := make(map[string]interface{})
		for _, ff := range form.Fields {
			name := ff.FieldDefinition.Name
			if value, ok := profile[name]; ok && value != nil && value != "" {
				prefill[name] = value
			}
		}
		if len(prefill) > 0 {
			rendered.Prefill = prefill
		}
	}

	return rendered
}

// BuildSections partitions the ordered field associations into sections and
// reconstructs address groups inside each. Every association appears exactly
// once in the output: solo, or inside exactly one group.
func BuildSections(fields []models.FormField) []dto.RenderedSection {
	sectionOrder := make([]string, 0)
	bySections := make(map[string][]models.FormField)
	for _, ff := range fields {
		if _, seen := bySections[ff.Section]; !seen {
			sectionOrder = append(sectionOrder, ff.Section)
		}
		bySections[ff.Section] = append(bySections[ff.Section], ff)
	}

	sections := make([]dto.RenderedSection, 0, len(sectionOrder))
	for _, title := range sectionOrder {
		sections = append(sections, dto.RenderedSection{
			Title: title,
			Items: buildSectionItems(bySections[title]),
		})
	}
	return sections
}

func buildSectionItems(fields []models.FormField) []dto.RenderedItem {
	// First pass: resolve which association each address root absorbs.
	// Explicit group ids win; the config linked-field name map is the
	// best-effort fallback for forms saved before group ids existed. A
	// linked field moved out of the section simply falls out of its group.
	absorbed := make(map[uuid.UUID]uuid.UUID) // member id -> root id
	groupMembers := make(map[uuid.UUID][]models.FormField)

	for _, root := range fields {
		if root.FieldDefinition.FieldType != fieldtypes.TypeAddress {
			continue
		}
		for _, candidate := range fields {
			if candidate.ID == root.ID {
				continue
			}
			if _, taken := absorbed[candidate.ID]; taken {
				continue
			}
			if belongsToGroup(root, candidate) {
				absorbed[candidate.ID] = root.ID
				groupMembers[root.ID] = append(groupMembers[root.ID], candidate)
			}
		}
	}

	items := make([]dto.RenderedItem, 0, len(fields))
	for _, ff := range fields {
		if _, taken := absorbed[ff.ID]; taken {
			continue // rendered inside its group
		}
		if ff.FieldDefinition.FieldType == fieldtypes.TypeAddress {
			group := dto.RenderedGroup{Parent: renderField(ff)}
			for _, member := range groupMembers[ff.ID] {
				group.Linked = append(group.Linked, renderField(member))
			}
			items = append(items, dto.RenderedItem{Kind: "group", Group: &group})
			continue
		}
		field := renderField(ff)
		items = append(items, dto.RenderedItem{Kind: "field", Field: &field})
	}
	return items
}

func belongsToGroup(root, candidate models.FormField) bool {
	if root.GroupID != nil {
		return candidate.GroupID != nil && *candidate.GroupID == *root.GroupID
	}
	cfg := fieldtypes.DecodeAddressConfig(root.FieldDefinition.Config)
	for _, name := range cfg.LinkedFields {
		if candidate.FieldDefinition.Name == name {
			return true
		}
	}
	return false
}

func renderField(ff models.FormField) dto.RenderedField {
	span := ff.ColumnSpan
	if span < 1 || span > 8 {
		span = 8
	}

	field := dto.RenderedField{
		Name:                    ff.FieldDefinition.Name,
		Label:                   ff.EffectiveLabel(),
		HelpText:                ff.HelpText,
		FieldType:               ff.FieldDefinition.FieldType,
		IsRequired:              ff.IsRequired,
		ColumnSpan:              span,
		Validation:              ff.FieldDefinition.Validation,
		SpecialPersonalInfo:     ff.FieldDefinition.SpecialPersonalInfo,
		RequiresExplicitConsent: ff.FieldDefinition.RequiresExplicitConsent,
	}

	if desc, ok := fieldtypes.Get(ff.FieldDefinition.FieldType); ok && desc.HasOptions {
		field.Options = fieldtypes.DecodeSelectConfig(ff.FieldDefinition.Config).Options
	}
	return field
}
