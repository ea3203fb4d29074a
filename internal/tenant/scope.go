package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForOrg returns a GORM scope that filters by organization_id.
func ForOrg(orgID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", orgID)
	}
}
