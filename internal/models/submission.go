package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SigningStatusNone      = "none"
	SigningStatusPending   = "pending"
	SigningStatusCompleted = "completed"
)

// Submission captures one patient's answers to one form version. Values is
// keyed by field definition name. Anonymous submissions carry a claim token
// so a later-registered user can attach them to their account.
type Submission struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FormTemplateID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"form_template_id"`
	FormVersion     int            `gorm:"not null" json:"form_version"`
	OrganizationID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	UserID          *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Values          datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"values"`
	ConsentGiven    bool           `gorm:"not null;default:false" json:"consent_given"`
	ConsentDuration string         `gorm:"size:30" json:"consent_duration,omitempty"`
	ConsentExpires  *time.Time     `json:"consent_expires,omitempty"`
	ClaimToken      *string        `gorm:"size:64;uniqueIndex" json:"-"`

	SigningStatus        string `gorm:"size:20;not null;default:'none'" json:"signing_status"`
	DocusealSubmissionID string `gorm:"size:100;index" json:"docuseal_submission_id,omitempty"`

	IPAddress   string    `gorm:"size:45" json:"-"`
	UserAgent   string    `gorm:"size:500" json:"-"`
	SubmittedAt time.Time `gorm:"not null;index" json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

// ValueMap decodes the stored answers, falling back to an empty map on
// malformed data.
func (s *Submission) ValueMap() map[string]interface{} {
	result := make(map[string]interface{})
	if len(s.Values) == 0 {
		return result
	}
	if err := json.Unmarshal(s.Values, &result); err != nil {
		return make(map[string]interface{})
	}
	return result
}
