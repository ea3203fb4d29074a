package fieldtypes

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Closed set of field types. Adding a type means adding a descriptor to the
// registry below; nothing dispatches on raw strings outside this package.
const (
	TypeText        = "text"
	TypeEmail       = "email"
	TypePhone       = "phone"
	TypeDate        = "date"
	TypeDatetime    = "datetime"
	TypeSelect      = "select"
	TypeMultiselect = "multiselect"
	TypeCheckbox    = "checkbox"
	TypeRadio       = "radio"
	TypeTextarea    = "textarea"
	TypeNumber      = "number"
	TypeFile        = "file"
	TypeSignature   = "signature"
	TypeCountry     = "country"
	TypeCurrency    = "currency"
	TypeAddress     = "address"
)

// NamePattern is the invariant every field definition name must satisfy.
var NamePattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)
)

// Descriptor describes one field type's behavior: how its config blob is
// shaped and how submitted values are checked beyond the required-field rule.
type Descriptor struct {
	Type        string
	HasOptions  bool // config carries an options list (select/multiselect/radio)
	Compound    bool // expands into linked sub-fields (address)
	ValidateVal func(value interface{}) error
}

var registry = map[string]Descriptor{
	TypeText:     {Type: TypeText},
	TypeTextarea: {Type: TypeTextarea},
	TypeEmail: {Type: TypeEmail, ValidateVal: func(v interface{}) error {
		s, ok := v.(string)
		if !ok || !emailPattern.MatchString(s) {
			return errors.New("invalid email address")
		}
		return nil
	}},
	TypePhone: {Type: TypePhone, ValidateVal: func(v interface{}) error {
		s, ok := v.(string)
		if !ok || !phonePattern.MatchString(s) {
			return errors.New("invalid phone number")
		}
		return nil
	}},
	TypeDate:     {Type: TypeDate, ValidateVal: dateValidator("2006-01-02")},
	TypeDatetime: {Type: TypeDatetime, ValidateVal: dateValidator(time.RFC3339)},
	TypeNumber: {Type: TypeNumber, ValidateVal: func(v interface{}) error {
		switch n := v.(type) {
		case float64, int, int64:
			return nil
		case string:
			if _, err := strconv.ParseFloat(n, 64); err != nil {
				return errors.New("not a number")
			}
			return nil
		default:
			return errors.New("not a number")
		}
	}},
	TypeSelect:      {Type: TypeSelect, HasOptions: true},
	TypeMultiselect: {Type: TypeMultiselect, HasOptions: true},
	TypeRadio:       {Type: TypeRadio, HasOptions: true},
	TypeCheckbox:    {Type: TypeCheckbox},
	TypeFile:        {Type: TypeFile},
	TypeSignature:   {Type: TypeSignature},
	TypeCountry:     {Type: TypeCountry},
	TypeCurrency:    {Type: TypeCurrency},
	TypeAddress:     {Type: TypeAddress, Compound: true},
}

func dateValidator(layout string) func(interface{}) error {
	return func(v interface{}) error {
		s, ok := v.(string)
		if !ok {
			return errors.New("invalid date")
		}
		if _, err := time.Parse(layout, s); err != nil {
			return fmt.Errorf("invalid date: expected %s", layout)
		}
		return nil
	}
}

// Get returns the descriptor for a field type.
func Get(fieldType string) (Descriptor, bool) {
	d, ok := registry[fieldType]
	return d, ok
}

// IsValid reports whether fieldType belongs to the closed set.
func IsValid(fieldType string) bool {
	_, ok := registry[fieldType]
	return ok
}

// All returns the supported field types.
func All() []string {
	result := make([]string, 0, len(registry))
	for t := range registry {
		result = append(result, t)
	}
	return result
}

// ValidateValue applies the type-specific check for a non-empty submitted
// value. Types without a validator accept anything.
func ValidateValue(fieldType string, value interface{}) error {
	d, ok := registry[fieldType]
	if !ok || d.ValidateVal == nil {
		return nil
	}
	return d.ValidateVal(value)
}
