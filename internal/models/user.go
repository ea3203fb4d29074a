package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RolePatient  = "patient"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// User covers all three actor kinds (patient, provider staff, platform admin).
// Profile holds canonical intake values keyed by field definition name;
// submissions are diffed against it for selective sync.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	FirstName string         `gorm:"size:100" json:"first_name"`
	LastName  string         `gorm:"size:100" json:"last_name"`
	Role      string         `gorm:"size:20;default:'patient'" json:"role"`
	Profile   datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"profile"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProfileMap decodes the stored profile blob, falling back to an empty map on
// malformed data.
func (u *User) ProfileMap() map[string]interface{} {
	result := make(map[string]interface{})
	if len(u.Profile) == 0 {
		return result
	}
	if err := json.Unmarshal(u.Profile, &result); err != nil {
		return make(map[string]interface{})
	}
	return result
}
