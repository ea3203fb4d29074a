package services_test

import (
	"testing"

	"github.com/clinicpass/clinicpass-backend/internal/fieldtypes"
	"github.com/clinicpass/clinicpass-backend/internal/models"
	"github.com/clinicpass/clinicpass-backend/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func formField(name, fieldType, section string) models.FormField {
	return models.FormField{
		ID:      uuid.New(),
		Section: section,
		FieldDefinition: models.FieldDefinition{
			ID:        uuid.New(),
			Name:      name,
			Label:     name,
			FieldType: fieldType,
		},
	}
}

func TestBuildSections_SectionOrderOfFirstAppearance(t *testing.T) {
	fields := []models.FormField{
		formField("firstName", fieldtypes.TypeText, "Personal"),
		formField("email", fieldtypes.TypeEmail, "Contact"),
		formField("lastName", fieldtypes.TypeText, "Personal"),
	}

	sections := services.BuildSections(fields)
	require.Len(t, sections, 2)
	assert.Equal(t, "Personal", sections[0].Title)
	assert.Equal(t, "Contact", sections[1].Title)
	assert.Len(t, sections[0].Items, 2)
	assert.Len(t, sections[1].Items, 1)
}

func TestBuildSections_GroupByGroupID(t *testing.T) {
	groupID := uuid.New()

	root := formField("homeStreetAddress", fieldtypes.TypeAddress, "Address")
	root.GroupID = &groupID
	suburb := formField("homeSuburb", fieldtypes.TypeText, "Address")
	suburb.GroupID = &groupID
	city := formField("homeCity", fieldtypes.TypeText, "Address")
	city.GroupID = &groupID
	unrelated := formField("email", fieldtypes.TypeEmail, "Address")

	sections := services.BuildSections([]models.FormField{root, suburb, city, unrelated})
	require.Len(t, sections, 1)
	items := sections[0].Items
	require.Len(t, items, 2)

	require.Equal(t, "group", items[0].Kind)
	assert.Equal(t, "homeStreetAddress", items[0].Group.Parent.Name)
	require.Len(t, items[0].Group.Linked, 2)
	assert.Equal(t, "homeSuburb", items[0].Group.Linked[0].Name)
	assert.Equal(t, "homeCity", items[0].Group.Linked[1].Name)

	require.Equal(t, "field", items[1].Kind)
	assert.Equal(t, "email", items[1].Field.Name)
}

func TestBuildSections_NameMatchFallback(t *testing.T) {
	// Forms saved before group ids: the root's config carries the linked
	// field names, members have no group id.
	root := formField("homeStreetAddress", fieldtypes.TypeAddress, "Address")
	root.FieldDefinition.Config = datatypes.JSON(fieldtypes.EncodeAddressConfig(fieldtypes.AddressConfig{
		LinkedFields: map[string]string{
			fieldtypes.RoleSuburb: "homeSuburb",
			fieldtypes.RoleCity:   "homeCity",
		},
	}))
	suburb := formField("homeSuburb", fieldtypes.TypeText, "Address")
	city := formField("homeCity", fieldtypes.TypeText, "Address")

	sections := services.BuildSections([]models.FormField{root, suburb, city})
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Items, 1)

	group := sections[0].Items[0].Group
	require.NotNil(t, group)
	assert.Len(t, group.Linked, 2)
}

func TestBuildSections_ExplicitGroupIDWinsOverNameMatch(t *testing.T) {
	// Root carries a group id, so the config name map is ignored: a field
	// whose name matches but whose group id differs renders solo.
	groupID := uuid.New()
	otherID := uuid.New()

	root := formField("homeStreetAddress", fieldtypes.TypeAddress, "Address")
	root.GroupID = &groupID
	root.FieldDefinition.Config = datatypes.JSON(fieldtypes.EncodeAddressConfig(fieldtypes.AddressConfig{
		LinkedFields: map[string]string{fieldtypes.RoleSuburb: "homeSuburb"},
	}))
	suburb := formField("homeSuburb", fieldtypes.TypeText, "Address")
	suburb.GroupID = &otherID

	sections := services.BuildSections([]models.FormField{root, suburb})
	require.Len(t, sections, 1)
	items := sections[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, "group", items[0].Kind)
	assert.Empty(t, items[0].Group.Linked)
	assert.Equal(t, "field", items[1].Kind)
}

func TestBuildSections_MemberInAnotherSectionRendersSolo(t *testing.T) {
	groupID := uuid.New()

	root := formField("homeStreetAddress", fieldtypes.TypeAddress, "Address")
	root.GroupID = &groupID
	suburb := formField("homeSuburb", fieldtypes.TypeText, "Other")
	suburb.GroupID = &groupID

	sections := services.BuildSections([]models.FormField{root, suburb})
	require.Len(t, sections, 2)

	// Grouping only applies within a section, so the moved member falls out
	// of its group and renders as a plain field.
	assert.Equal(t, "group", sections[0].Items[0].Kind)
	assert.Empty(t, sections[0].Items[0].Group.Linked)
	assert.Equal(t, "field", sections[1].Items[0].Kind)
	assert.Equal(t, "homeSuburb", sections[1].Items[0].Field.Name)
}

func TestRenderForm_PrefillAndColumnSpan(t *testing.T) {
	first := formField("firstName", fieldtypes.TypeText, "Personal")
	first.ColumnSpan = 4
	email := formField("email", fieldtypes.TypeEmail, "Personal")
	email.ColumnSpan = 99 // out of range, clamps to full width

	form := &models.FormTemplate{
		ID:      uuid.New(),
		Title:   "Check-In",
		Version: 3,
		Fields:  []models.FormField{first, email},
	}

	profile := map[string]interface{}{
		"firstName": "Thandi",
		"email":     "",        // empty values never prefill
		"ignored":   "whatever", // not on the form
	}

	rendered := services.RenderForm(form, "Sunnyside Clinic", profile)
	assert.Equal(t, "Sunnyside Clinic", rendered.OrganizationName)
	assert.Equal(t, 3, rendered.Version)
	assert.False(t, rendered.RequiresSignature)
	assert.Equal(t, map[string]interface{}{"firstName": "Thandi"}, rendered.Prefill)

	require.Len(t, rendered.Sections, 1)
	items := rendered.Sections[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, 4, items[0].Field.ColumnSpan)
	assert.Equal(t, 8, items[1].Field.ColumnSpan)
}

func TestRenderForm_ConsentDurationOptions(t *testing.T) {
	form := &models.FormTemplate{
		ID:                     uuid.New(),
		Title:                  "Consent Form",
		ConsentDurationEnabled: true,
		ConsentDurationOptions: datatypes.JSON(`["30days","1year"]`),
		ConsentDurationDefault: "30days",
		DocusealTemplateID:     "tpl_123",
	}

	rendered := services.RenderForm(form, "", nil)
	assert.True(t, rendered.RequiresSignature)
	assert.Equal(t, []string{"30days", "1year"}, rendered.ConsentDurationOptions)
	assert.Equal(t, "30days", rendered.ConsentDurationDefault)
	assert.Nil(t, rendered.Prefill)
}

func TestRenderForm_SelectOptionsDecoded(t *testing.T) {
	sel := formField("title", fieldtypes.TypeSelect, "Personal")
	sel.FieldDefinition.Config = datatypes.JSON(`{"options":[{"value":"dr","label":"Dr"},{"value":"mr","label":"Mr"}]}`)

	form := &models.FormTemplate{ID: uuid.New(), Fields: []models.FormField{sel}}
	rendered := services.RenderForm(form, "", nil)

	field := rendered.Sections[0].Items[0].Field
	require.Len(t, field.Options, 2)
	assert.Equal(t, fieldtypes.Option{Value: "dr", Label: "Dr"}, field.Options[0])
}
