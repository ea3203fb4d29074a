package dto

type CreateQRRequest struct {
	Label string `json:"label" validate:"max=255"`
}

type UpdateQRRequest struct {
	Label    *string `json:"label" validate:"omitempty,max=255"`
	IsActive *bool   `json:"is_active"`
}
