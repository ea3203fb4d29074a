package services_test

import (
	"testing"

	"github.com/clinicpass/clinicpass-backend/internal/fieldtypes"
	"github.com/clinicpass/clinicpass-backend/internal/models"
	"github.com/clinicpass/clinicpass-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffProfile(t *testing.T) {
	fields := []models.FormField{
		formField("firstName", fieldtypes.TypeText, "Main"),
		formField("phone", fieldtypes.TypePhone, "Main"),
		formField("email", fieldtypes.TypeEmail, "Main"),
		formField("newsletter", fieldtypes.TypeCheckbox, "Main"),
	}

	profile := map[string]interface{}{
		"firstName": "Thandi",
		"phone":     "+27 21 555 0100",
	}
	submitted := map[string]interface{}{
		"firstName":  "Thandi",            // unchanged, no diff
		"phone":      "+27 82 555 0199",   // changed
		"email":      "thandi@example.com", // new to the profile
		"newsletter": false,               // empty-ish, skipped
	}

	diffs := services.DiffProfile(fields, profile, submitted)
	require.Len(t, diffs, 2)

	assert.Equal(t, "phone", diffs[0].FieldName)
	assert.Equal(t, "+27 21 555 0100", diffs[0].CurrentValue)
	assert.Equal(t, "+27 82 555 0199", diffs[0].SubmittedValue)

	assert.Equal(t, "email", diffs[1].FieldName)
	assert.Nil(t, diffs[1].CurrentValue)
	assert.Equal(t, "thandi@example.com", diffs[1].SubmittedValue)
}

func TestDiffProfile_NoDivergence(t *testing.T) {
	fields := []models.FormField{formField("firstName", fieldtypes.TypeText, "Main")}

	diffs := services.DiffProfile(fields,
		map[string]interface{}{"firstName": "Sipho"},
		map[string]interface{}{"firstName": "Sipho"})
	assert.Empty(t, diffs)

	// Empty submissions never produce diffs, even against an empty profile.
	diffs = services.DiffProfile(fields,
		map[string]interface{}{},
		map[string]interface{}{"firstName": ""})
	assert.Empty(t, diffs)
}

func TestDiffProfile_LabelUsesOverride(t *testing.T) {
	ff := formField("firstName", fieldtypes.TypeText, "Main")
	ff.FieldDefinition.Label = "First Name"
	ff.LabelOverride = "Given Name"

	diffs := services.DiffProfile([]models.FormField{ff},
		map[string]interface{}{},
		map[string]interface{}{"firstName": "Lerato"})
	require.Len(t, diffs, 1)
	assert.Equal(t, "Given Name", diffs[0].FieldLabel)
}
