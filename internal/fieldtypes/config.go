package fieldtypes

import (
	"encoding/json"
)

// Typed views over the opaque per-field config blob. Decoding is
// best-effort: malformed blobs yield the zero config rather than an error,
// matching how stored legacy data is treated at read time.

// Option is one selectable choice for select/multiselect/radio fields.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SelectConfig is the config variant for option-bearing field types.
type SelectConfig struct {
	Options []Option `json:"options,omitempty"`
}

// AddressConfig is the config variant for compound address fields.
// LinkedFields maps logical roles (complexName, unitNumber, suburb, city,
// province, postalCode, country) to the names of sibling field definitions.
type AddressConfig struct {
	LinkedFields map[string]string `json:"linkedFields,omitempty"`
}

// FileConfig is the config variant for file upload fields.
type FileConfig struct {
	MaxSizeMB int      `json:"maxSizeMB,omitempty"`
	Accept    []string `json:"accept,omitempty"`
}

func DecodeSelectConfig(raw []byte) SelectConfig {
	var cfg SelectConfig
	if len(raw) == 0 {
		return cfg
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return SelectConfig{}
	}
	return cfg
}

func DecodeAddressConfig(raw []byte) AddressConfig {
	var cfg AddressConfig
	if len(raw) == 0 {
		return cfg
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return AddressConfig{}
	}
	return cfg
}

func DecodeFileConfig(raw []byte) FileConfig {
	var cfg FileConfig
	if len(raw) == 0 {
		return cfg
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return FileConfig{}
	}
	return cfg
}

// EncodeAddressConfig marshals an address config for storage. The blob only
// ever holds the linked-field map, so marshal errors cannot occur in
// practice; an empty object is the fallback.
func EncodeAddressConfig(cfg AddressConfig) []byte {
	b, err := json.Marshal(cfg)
	if err != nil {
		return []byte(`{}`)
	}
	return b
}
