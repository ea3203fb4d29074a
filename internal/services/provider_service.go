package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/models"
)

var (
	ErrOrgNotFound     = errors.New("organization not found")
	ErrNotOrgMember    = errors.New("not a member of this organization")
	ErrOwnerOnly       = errors.New("only the organization owner may do this")
	ErrAlreadyReviewed = errors.New("organization already reviewed")
)

type ProviderService struct {
	db   *gorm.DB
	auth *AuthService
}

func NewProviderService(db *gorm.DB, auth *AuthService) *ProviderService {
	return &ProviderService{db: db, auth: auth}
}

// SaveRegistration stages provider sign-up data keyed by email before any
// account exists. Repeated saves overwrite the staged payload.
func (s *ProviderService) SaveRegistration(req *dto.SaveRegistrationRequest) error {
	payload := datatypes.JSON(`{}`)
	if req.Payload != nil {
		b, err := json.Marshal(req.Payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		payload = datatypes.JSON(b)
	}

	var existing models.PendingRegistration
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		staged := models.PendingRegistration{
			ID:      uuid.New(),
			Email:   req.Email,
			Payload: payload,
		}
		return s.db.Create(&staged).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&existing).UpdateColumn("payload", payload).Error
}

// CompleteRegistration creates the provider user, a pending organization and
// the owner membership in one transaction, consuming any staged data.
func (s *ProviderService) CompleteRegistration(req *dto.CompleteRegistrationRequest) (*dto.AuthResponse, *models.Organization, error) {
	var user *models.User
	var org models.Organization

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.auth.CreateProviderUser(tx, req.Email, req.Password, req.FirstName, req.LastName)
		if err != nil {
			return err
		}

		org = models.Organization{
			ID:             uuid.New(),
			Name:           req.OrganizationName,
			PracticeNumber: req.PracticeNumber,
			ContactEmail:   req.Email,
			ContactPhone:   req.ContactPhone,
			Address:        req.Address,
			Status:         models.OrgStatusPending,
		}
		if err := tx.Create(&org).Error; err != nil {
			return fmt.Errorf("create organization: %w", err)
		}

		member := models.OrganizationMember{
			ID:             uuid.New(),
			OrganizationID: org.ID,
			UserID:         user.ID,
			Role:           models.MemberRoleOwner,
		}
		if err := tx.Create(&member).Error; err != nil {
			return fmt.Errorf("create membership: %w", err)
		}

		return tx.Where("email = ?", req.Email).Delete(&models.PendingRegistration{}).Error
	})
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.auth.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, &org, nil
}

// Membership resolves a user's organization membership.
func (s *ProviderService) Membership(userID uuid.UUID) (*models.OrganizationMember, error) {
	var member models.OrganizationMember
	err := s.db.Preload("Organization").Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotOrgMember
		}
		return nil, err
	}
	return &member, nil
}

func (s *ProviderService) GetOrganization(orgID uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.First(&org, "id = ?", orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}
	return &org, nil
}

// UpdateSettings patches the organization profile. Owner-only.
func (s *ProviderService) UpdateSettings(orgID, userID uuid.UUID, req *dto.UpdateSettingsRequest) (*models.Organization, error) {
	member, err := s.Membership(userID)
	if err != nil {
		return nil, err
	}
	if member.OrganizationID != orgID || member.Role != models.MemberRoleOwner {
		return nil, ErrOwnerOnly
	}

	org, err := s.GetOrganization(orgID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.PracticeNumber != nil {
		updates["practice_number"] = *req.PracticeNumber
	}
	if req.ContactEmail != nil {
		updates["contact_email"] = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = *req.ContactPhone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if len(updates) == 0 {
		return org, nil
	}
	if err := s.db.Model(org).Updates(updates).Error; err != nil {
		return nil, err
	}
	return org, nil
}

type ProviderFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

func (s *ProviderService) ListOrganizations(filter ProviderFilter) ([]models.Organization, int64, error) {
	query := s.db.Model(&models.Organization{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(contact_email) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	var orgs []models.Organization
	err := query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&orgs).Error
	return orgs, total, err
}

// Review approves or rejects a pending organization.
func (s *ProviderService) Review(orgID uuid.UUID, req *dto.ReviewProviderRequest) (*models.Organization, error) {
	org, err := s.GetOrganization(orgID)
	if err != nil {
		return nil, err
	}
	if org.Status != models.OrgStatusPending {
		return nil, ErrAlreadyReviewed
	}

	now := time.Now().UTC()
	err = s.db.Model(org).Updates(map[string]interface{}{
		"status":      req.Status,
		"review_note": req.Note,
		"reviewed_at": now,
	}).Error
	if err != nil {
		return nil, err
	}
	org.Status = req.Status
	org.ReviewNote = req.Note
	org.ReviewedAt = &now
	return org, nil
}
