package fieldtypes_test

import (
	"testing"

	"github.com/clinicpass/clinicpass-backend/internal/fieldtypes"
	"github.com/stretchr/testify/assert"
)

func TestDecodeSelectConfig(t *testing.T) {
	cfg := fieldtypes.DecodeSelectConfig([]byte(`{"options":[{"value":"a","label":"Option A"},{"value":"b","label":"Option B"}]}`))
	assert.Len(t, cfg.Options, 2)
	assert.Equal(t, "a", cfg.Options[0].Value)
	assert.Equal(t, "Option B", cfg.Options[1].Label)

	assert.Empty(t, fieldtypes.DecodeSelectConfig(nil).Options)
	assert.Empty(t, fieldtypes.DecodeSelectConfig([]byte(`not json`)).Options)
}

func TestAddressConfigRoundTrip(t *testing.T) {
	cfg := fieldtypes.AddressConfig{LinkedFields: map[string]string{
		fieldtypes.RoleSuburb: "homeSuburb",
		fieldtypes.RoleCity:   "homeCity",
	}}

	decoded := fieldtypes.DecodeAddressConfig(fieldtypes.EncodeAddressConfig(cfg))
	assert.Equal(t, cfg.LinkedFields, decoded.LinkedFields)

	assert.Nil(t, fieldtypes.DecodeAddressConfig([]byte(`{broken`)).LinkedFields)
}

func TestDecodeFileConfig(t *testing.T) {
	cfg := fieldtypes.DecodeFileConfig([]byte(`{"maxSizeMB":5,"accept":["application/pdf"]}`))
	assert.Equal(t, 5, cfg.MaxSizeMB)
	assert.Equal(t, []string{"application/pdf"}, cfg.Accept)
}
