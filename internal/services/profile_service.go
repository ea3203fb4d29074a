package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/models"
)

var ErrInvalidClaimToken = errors.New("invalid claim token")

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// DiffProfile lists every form field whose submitted value is non-empty and
// disagrees with the stored profile. Per-field overwrite is the only merge
// the platform offers; this just surfaces the choices.
func DiffProfile(fields []models.FormField, profile, submitted map[string]interface{}) []dto.ProfileDiff {
	var diffs []dto.ProfileDiff
	for _, ff := range fields {
		name := ff.FieldDefinition.Name
		value, present := submitted[name]
		if !present || isEmptyValue(value) {
			continue
		}
		current, hasCurrent := profile[name]
		if hasCurrent && valuesEqual(current, value) {
			continue
		}
		if !hasCurrent {
			current = nil
		}
		diffs = append(diffs, dto.ProfileDiff{
			FieldName:      name,
			FieldLabel:     ff.EffectiveLabel(),
			CurrentValue:   current,
			SubmittedValue: value,
		})
	}
	return diffs
}

// valuesEqual compares decoded JSON values. Both sides come through
// encoding/json, so DeepEqual on the decoded forms is sufficient.
func valuesEqual(a, b interface{}) bool {
	return reflect.DeepEqual(a, b)
}

func (s *ProfileService) GetUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile merges the given values into the user's stored profile.
func (s *ProfileService) UpdateProfile(userID uuid.UUID, values map[string]interface{}) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	profile := user.ProfileMap()
	for name, value := range values {
		profile[name] = value
	}

	blob, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	if err := s.db.Model(user).UpdateColumn("profile", datatypes.JSON(blob)).Error; err != nil {
		return nil, err
	}
	user.Profile = datatypes.JSON(blob)
	return user, nil
}

// SyncFromSubmission overwrites only the accepted field names with the
// submission's values. Skipped fields keep their profile value.
func (s *ProfileService) SyncFromSubmission(userID uuid.UUID, req *dto.SyncProfileRequest) (*models.User, error) {
	var submission models.Submission
	err := s.db.Where("id = ? AND user_id = ?", req.SubmissionID, userID).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	values := submission.ValueMap()
	accepted := make(map[string]interface{}, len(req.FieldNames))
	for _, name := range req.FieldNames {
		if value, ok := values[name]; ok {
			accepted[name] = value
		}
	}
	return s.UpdateProfile(userID, accepted)
}

// Claim attaches an anonymous submission to a newly authenticated user and
// burns the claim token.
func (s *ProfileService) Claim(userID uuid.UUID, claimToken string) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.Where("claim_token = ? AND user_id IS NULL", claimToken).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidClaimToken
		}
		return nil, err
	}

	err = s.db.Model(&submission).Updates(map[string]interface{}{
		"user_id":     userID,
		"claim_token": nil,
	}).Error
	if err != nil {
		return nil, err
	}
	submission.UserID = &userID
	submission.ClaimToken = nil
	return &submission, nil
}
