package fieldtypes_test

import (
	"testing"

	"github.com/clinicpass/clinicpass-backend/internal/fieldtypes"
	"github.com/stretchr/testify/assert"
)

func TestAddressNamePrefix(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prefix string
	}{
		{name: "street_address_suffix", input: "homeStreetAddress", prefix: "home"},
		{name: "address_suffix", input: "postalAddress", prefix: "postal"},
		{name: "bare_street_address", input: "streetAddress", prefix: ""},
		{name: "bare_address", input: "address", prefix: ""},
		{name: "no_recognized_suffix", input: "practiceLocation", prefix: "practiceLocation"},
		{name: "work_address", input: "workAddress", prefix: "work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.prefix, fieldtypes.AddressNamePrefix(tt.input))
		})
	}
}

func TestAddressLabelPrefix(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prefix string
	}{
		{name: "street_address_suffix", input: "Home Street Address", prefix: "Home"},
		{name: "address_suffix", input: "Postal Address", prefix: "Postal"},
		{name: "bare_street_address", input: "Street Address", prefix: ""},
		{name: "no_suffix", input: "Practice Location", prefix: "Practice Location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.prefix, fieldtypes.AddressLabelPrefix(tt.input))
		})
	}
}

func TestLinkedFieldNaming(t *testing.T) {
	// homeStreetAddress expands to homeComplexName, homeUnitNumber, ...
	prefix := fieldtypes.AddressNamePrefix("homeStreetAddress")
	var names []string
	for _, spec := range fieldtypes.LinkedFieldSpecs {
		names = append(names, fieldtypes.LinkedFieldName(prefix, spec))
	}
	assert.Equal(t, []string{
		"homeComplexName", "homeUnitNumber", "homeSuburb", "homeCity",
		"homeProvince", "homePostalCode", "homeCountry",
	}, names)

	// A bare streetAddress yields unprefixed, still-valid names.
	barePrefix := fieldtypes.AddressNamePrefix("streetAddress")
	assert.Equal(t, "", barePrefix)
	for _, spec := range fieldtypes.LinkedFieldSpecs {
		name := fieldtypes.LinkedFieldName(barePrefix, spec)
		assert.True(t, fieldtypes.NamePattern.MatchString(name), name)
	}
	assert.Equal(t, "complexName", fieldtypes.LinkedFieldName(barePrefix, fieldtypes.LinkedFieldSpecs[0]))
}

func TestLinkedFieldLabels(t *testing.T) {
	labelPrefix := fieldtypes.AddressLabelPrefix("Home Street Address")
	assert.Equal(t, "Home Building/Complex", fieldtypes.LinkedFieldLabel(labelPrefix, fieldtypes.LinkedFieldSpecs[0]))
	assert.Equal(t, "Home Postal Code", fieldtypes.LinkedFieldLabel(labelPrefix, fieldtypes.LinkedFieldSpecs[5]))

	assert.Equal(t, "Country", fieldtypes.LinkedFieldLabel("", fieldtypes.LinkedFieldSpecs[6]))
}

func TestLinkedFieldSpecsShape(t *testing.T) {
	assert.Len(t, fieldtypes.LinkedFieldSpecs, 7)

	// Country is the only non-text sub-field.
	for _, spec := range fieldtypes.LinkedFieldSpecs {
		if spec.Role == fieldtypes.RoleCountry {
			assert.Equal(t, fieldtypes.TypeCountry, spec.FieldType)
		} else {
			assert.Equal(t, fieldtypes.TypeText, spec.FieldType)
		}
	}
}
