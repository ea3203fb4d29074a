package fieldtypes_test

import (
	"testing"

	"github.com/clinicpass/clinicpass-backend/internal/fieldtypes"
	"github.com/stretchr/testify/assert"
)

func TestNamePattern(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		matches bool
	}{
		{name: "camel_case", input: "firstName", matches: true},
		{name: "single_letter", input: "x", matches: true},
		{name: "with_digits", input: "address2Line", matches: true},
		{name: "uppercase_start", input: "FirstName", matches: false},
		{name: "snake_case", input: "first_name", matches: false},
		{name: "leading_digit", input: "1stName", matches: false},
		{name: "spaces", input: "first name", matches: false},
		{name: "empty", input: "", matches: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, fieldtypes.NamePattern.MatchString(tt.input))
		})
	}
}

func TestIsValid(t *testing.T) {
	for _, ft := range fieldtypes.All() {
		assert.True(t, fieldtypes.IsValid(ft))
	}
	assert.False(t, fieldtypes.IsValid("dropdown"))
	assert.False(t, fieldtypes.IsValid(""))
}

func TestDescriptors(t *testing.T) {
	address, ok := fieldtypes.Get(fieldtypes.TypeAddress)
	assert.True(t, ok)
	assert.True(t, address.Compound)

	for _, ft := range []string{fieldtypes.TypeSelect, fieldtypes.TypeMultiselect, fieldtypes.TypeRadio} {
		d, ok := fieldtypes.Get(ft)
		assert.True(t, ok)
		assert.True(t, d.HasOptions, ft)
	}

	text, ok := fieldtypes.Get(fieldtypes.TypeText)
	assert.True(t, ok)
	assert.False(t, text.Compound)
	assert.False(t, text.HasOptions)
}

func TestValidateValue(t *testing.T) {
	tests := []struct {
		name      string
		fieldType string
		value     interface{}
		wantErr   bool
	}{
		{name: "valid_email", fieldType: fieldtypes.TypeEmail, value: "jane@example.com", wantErr: false},
		{name: "email_missing_domain", fieldType: fieldtypes.TypeEmail, value: "jane@", wantErr: true},
		{name: "email_not_string", fieldType: fieldtypes.TypeEmail, value: 42, wantErr: true},
		{name: "valid_phone", fieldType: fieldtypes.TypePhone, value: "+27 21 555 0100", wantErr: false},
		{name: "phone_too_short", fieldType: fieldtypes.TypePhone, value: "123", wantErr: true},
		{name: "phone_letters", fieldType: fieldtypes.TypePhone, value: "call me maybe", wantErr: true},
		{name: "valid_date", fieldType: fieldtypes.TypeDate, value: "1984-06-15", wantErr: false},
		{name: "date_wrong_layout", fieldType: fieldtypes.TypeDate, value: "15/06/1984", wantErr: true},
		{name: "valid_datetime", fieldType: fieldtypes.TypeDatetime, value: "2026-08-29T10:30:00Z", wantErr: false},
		{name: "datetime_date_only", fieldType: fieldtypes.TypeDatetime, value: "2026-08-29", wantErr: true},
		{name: "number_float", fieldType: fieldtypes.TypeNumber, value: 98.6, wantErr: false},
		{name: "number_string", fieldType: fieldtypes.TypeNumber, value: "98.6", wantErr: false},
		{name: "number_garbage", fieldType: fieldtypes.TypeNumber, value: "abc", wantErr: true},
		{name: "number_bool", fieldType: fieldtypes.TypeNumber, value: true, wantErr: true},
		{name: "text_accepts_anything", fieldType: fieldtypes.TypeText, value: 12345, wantErr: false},
		{name: "unknown_type_accepts", fieldType: "nonsense", value: "x", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fieldtypes.ValidateValue(tt.fieldType, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
