package dto

type SaveRegistrationRequest struct {
	Email   string                 `json:"email" validate:"required,email"`
	Payload map[string]interface{} `json:"payload"`
}

type CompleteRegistrationRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	FirstName        string `json:"first_name" validate:"required,max=100"`
	LastName         string `json:"last_name" validate:"required,max=100"`
	OrganizationName string `json:"organization_name" validate:"required,max=255"`
	PracticeNumber   string `json:"practice_number" validate:"max=50"`
	ContactPhone     string `json:"contact_phone" validate:"max=50"`
	Address          string `json:"address" validate:"max=500"`
}

type UpdateSettingsRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=255"`
	PracticeNumber *string `json:"practice_number" validate:"omitempty,max=50"`
	ContactEmail   *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone   *string `json:"contact_phone" validate:"omitempty,max=50"`
	Address        *string `json:"address" validate:"omitempty,max=500"`
}

type ReviewProviderRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Note   string `json:"note" validate:"max=1000"`
}
