package fieldtypes

import (
	"strings"
)

// Logical roles inside an address group, in render order.
const (
	RoleComplexName = "complexName"
	RoleUnitNumber  = "unitNumber"
	RoleSuburb      = "suburb"
	RoleCity        = "city"
	RoleProvince    = "province"
	RolePostalCode  = "postalCode"
	RoleCountry     = "country"
)

// LinkedFieldSpec is one of the seven fixed sub-fields an address field
// expands into.
type LinkedFieldSpec struct {
	Role        string
	NameSuffix  string
	LabelSuffix string
	FieldType   string
	Description string
}

// LinkedFieldSpecs is ordered; sort orders of the created sub-fields follow
// the parent's in this sequence.
var LinkedFieldSpecs = []LinkedFieldSpec{
	{Role: RoleComplexName, NameSuffix: "ComplexName", LabelSuffix: "Building/Complex", FieldType: TypeText, Description: "Building or complex name"},
	{Role: RoleUnitNumber, NameSuffix: "UnitNumber", LabelSuffix: "Unit/Suite", FieldType: TypeText, Description: "Unit, suite or apartment number"},
	{Role: RoleSuburb, NameSuffix: "Suburb", LabelSuffix: "Suburb", FieldType: TypeText, Description: "Suburb"},
	{Role: RoleCity, NameSuffix: "City", LabelSuffix: "City", FieldType: TypeText, Description: "City or town"},
	{Role: RoleProvince, NameSuffix: "Province", LabelSuffix: "Province", FieldType: TypeText, Description: "Province or state"},
	{Role: RolePostalCode, NameSuffix: "PostalCode", LabelSuffix: "Postal Code", FieldType: TypeText, Description: "Postal code"},
	{Role: RoleCountry, NameSuffix: "Country", LabelSuffix: "Country", FieldType: TypeCountry, Description: "Country"},
}

// AddressNamePrefix derives the linked-field name prefix from the parent
// field's name by stripping a trailing StreetAddress/Address.
func AddressNamePrefix(name string) string {
	// Bare parent names yield no prefix; checked before the suffix strips,
	// which would otherwise leave "street" behind.
	if name == "streetAddress" || name == "address" {
		return ""
	}
	if strings.HasSuffix(name, "StreetAddress") {
		return strings.TrimSuffix(name, "StreetAddress")
	}
	if strings.HasSuffix(name, "Address") {
		return strings.TrimSuffix(name, "Address")
	}
	return name
}

// AddressLabelPrefix derives the linked-field label prefix from the parent
// field's label by stripping a trailing "Street Address"/"Address".
func AddressLabelPrefix(label string) string {
	label = strings.TrimSpace(label)
	for _, suffix := range []string{"Street Address", "Address"} {
		if strings.HasSuffix(label, suffix) {
			return strings.TrimSpace(strings.TrimSuffix(label, suffix))
		}
	}
	return label
}

// LinkedFieldName composes the sub-field name: prefix + suffix, or the
// suffix alone lower-cased so it still satisfies NamePattern when the parent
// name yields no prefix.
func LinkedFieldName(prefix string, spec LinkedFieldSpec) string {
	if prefix == "" {
		return strings.ToLower(spec.NameSuffix[:1]) + spec.NameSuffix[1:]
	}
	return prefix + spec.NameSuffix
}

// LinkedFieldLabel composes the sub-field label.
func LinkedFieldLabel(labelPrefix string, spec LinkedFieldSpec) string {
	if labelPrefix == "" {
		return spec.LabelSuffix
	}
	return labelPrefix + " " + spec.LabelSuffix
}
