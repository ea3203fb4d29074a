package dto

import "github.com/go-playground/validator/v10"

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidationErrorResponse carries field-keyed messages for submission and
// request validation failures. Consent failures use the "_consent" key.
type ValidationErrorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

var validate = validator.New()

// Validate runs struct tag validation on a request DTO.
func Validate(s interface{}) error {
	return validate.Struct(s)
}
