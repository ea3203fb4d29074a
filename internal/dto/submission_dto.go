package dto

import (
	"github.com/google/uuid"
)

// Post-submit states. The caller drives its flow off NextState; conditional
// skips depend on authentication, docuseal wiring and whether a diff exists.
const (
	StateSubmitted          = "submitted"
	StateSigning            = "signing"
	StateRegistrationPrompt = "registration-prompt"
	StateProfileSync        = "profile-sync"
)

// ConsentErrorKey is the reserved sentinel key for consent validation
// failures in the field-keyed error map.
const ConsentErrorKey = "_consent"

type SubmitFormRequest struct {
	Values          map[string]interface{} `json:"values" validate:"required"`
	ConsentGiven    bool                   `json:"consent_given"`
	ConsentDuration string                 `json:"consent_duration"`
}

type SubmitFormResponse struct {
	SubmissionID uuid.UUID     `json:"submission_id"`
	NextState    string        `json:"next_state"`
	ClaimToken   string        `json:"claim_token,omitempty"`
	SigningURL   string        `json:"signing_url,omitempty"`
	Diffs        []ProfileDiff `json:"diffs,omitempty"`
}

// ProfileDiff is one field where the submission disagrees with the
// authenticated user's stored profile.
type ProfileDiff struct {
	FieldName      string      `json:"field_name"`
	FieldLabel     string      `json:"field_label"`
	CurrentValue   interface{} `json:"current_value"`
	SubmittedValue interface{} `json:"submitted_value"`
}

// SyncProfileRequest applies the accepted subset of a submission's values to
// the caller's profile.
type SyncProfileRequest struct {
	SubmissionID uuid.UUID `json:"submission_id" validate:"required"`
	FieldNames   []string  `json:"field_names" validate:"required,min=1"`
}

type ClaimSubmissionRequest struct {
	ClaimToken string `json:"claim_token" validate:"required"`
}

type UpdateProfileRequest struct {
	Values map[string]interface{} `json:"values" validate:"required"`
}
