package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/fieldtypes"
	"github.com/clinicpass/clinicpass-backend/internal/models"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// SigningClient creates e-signature requests for submissions on templates
// with a signature template configured.
type SigningClient interface {
	CreateSigningRequest(form *models.FormTemplate, values map[string]interface{}, signerEmail string) (submissionID, signingURL string, err error)
}

type SubmissionService struct {
	db      *gorm.DB
	signing SigningClient
}

func NewSubmissionService(db *gorm.DB, signing SigningClient) *SubmissionService {
	return &SubmissionService{db: db, signing: signing}
}

// ValidateSubmission applies the all-or-nothing submit checks: every
// required field must carry a value, and consent must be given when the
// template has a consent clause. The returned map is keyed by field name;
// consent failures use the reserved "_consent" key. Empty map means valid.
func ValidateSubmission(form *models.FormTemplate, req *dto.SubmitFormRequest) map[string]string {
	fieldErrors := make(map[string]string)

	for _, ff := range form.Fields {
		name := ff.FieldDefinition.Name
		value, present := req.Values[name]

		if ff.IsRequired && (!present || isEmptyValue(value)) {
			fieldErrors[name] = ff.EffectiveLabel() + " is required"
			continue
		}
		if present && !isEmptyValue(value) {
			if err := fieldtypes.ValidateValue(ff.FieldDefinition.FieldType, value); err != nil {
				fieldErrors[name] = err.Error()
			}
		}
	}

	if form.ConsentClause != nil && !req.ConsentGiven {
		fieldErrors[dto.ConsentErrorKey] = "Consent is required before submitting"
	}

	return fieldErrors
}

// isEmptyValue mirrors the renderer's notion of "missing": null, absent,
// empty string, empty list, or an unchecked checkbox.
func isEmptyValue(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case bool:
		return !value
	case []interface{}:
		return len(value) == 0
	default:
		return false
	}
}

// NextState decides the post-submit transition. Signing runs first when
// configured; authenticated users with a profile divergence are offered
// reconciliation; anonymous submitters are prompted to register so the
// submission can be claimed later.
func NextState(requiresSignature, authenticated, hasDiff bool) string {
	switch {
	case requiresSignature:
		return dto.StateSigning
	case authenticated && hasDiff:
		return dto.StateProfileSync
	case !authenticated:
		return dto.StateRegistrationPrompt
	default:
		return dto.StateSubmitted
	}
}

// Submit validates and persists a submission, then resolves the caller's
// next state. Validation failure returns the field-keyed error map and no
// submission; nothing partial is ever stored.
func (s *SubmissionService) Submit(form *models.FormTemplate, user *models.User, req *dto.SubmitFormRequest, ip, userAgent string) (*dto.SubmitFormResponse, map[string]string, error) {
	if fieldErrors := ValidateSubmission(form, req); len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	valuesJSON, err := json.Marshal(req.Values)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal values: %w", err)
	}

	submission := models.Submission{
		ID:             uuid.New(),
		FormTemplateID: form.ID,
		FormVersion:    form.Version,
		OrganizationID: form.OrganizationID,
		Values:         datatypes.JSON(valuesJSON),
		ConsentGiven:   req.ConsentGiven,
		SigningStatus:  models.SigningStatusNone,
		IPAddress:      ip,
		UserAgent:      userAgent,
		SubmittedAt:    time.Now().UTC(),
	}

	if form.ConsentDurationEnabled && req.ConsentDuration != "" {
		submission.ConsentDuration = req.ConsentDuration
		if expiry, ok := consentExpiry(req.ConsentDuration, submission.SubmittedAt); ok {
			submission.ConsentExpires = &expiry
		}
	}

	response := &dto.SubmitFormResponse{}

	var authenticated bool
	var diffs []dto.ProfileDiff
	if user != nil {
		authenticated = true
		submission.UserID = &user.ID
		diffs = DiffProfile(form.Fields, user.ProfileMap(), req.Values)
	} else {
		token, err := generateClaimToken()
		if err != nil {
			return nil, nil, err
		}
		submission.ClaimToken = &token
		response.ClaimToken = token
	}

	requiresSignature := form.DocusealTemplateID != "" && s.signing != nil
	if requiresSignature {
		signerEmail := ""
		if user != nil {
			signerEmail = user.Email
		}
		docusealID, signingURL, err := s.signing.CreateSigningRequest(form, req.Values, signerEmail)
		if err != nil {
			// Signature failure must not lose the answers; the submission
			// proceeds unsigned and the operator can follow up.
			slog.Error("docuseal signing request failed", "form_id", form.ID, "error", err)
			requiresSignature = false
		} else {
			submission.SigningStatus = models.SigningStatusPending
			submission.DocusealSubmissionID = docusealID
			response.SigningURL = signingURL
		}
	}

	if err := s.db.Create(&submission).Error; err != nil {
		return nil, nil, fmt.Errorf("create submission: %w", err)
	}

	response.SubmissionID = submission.ID
	ApplyOutcome(response, requiresSignature, authenticated, diffs)
	return response, nil, nil
}

// ApplyOutcome sets the post-submit state and attaches any profile
// divergence. Diffs ride along even when signing comes first, so the caller
// can resume reconciliation after the signature step.
func ApplyOutcome(response *dto.SubmitFormResponse, requiresSignature, authenticated bool, diffs []dto.ProfileDiff) {
	response.NextState = NextState(requiresSignature, authenticated, len(diffs) > 0)
	if len(diffs) > 0 {
		response.Diffs = diffs
	}
}

// Get loads a submission owned by the given user.
func (s *SubmissionService) Get(userID, submissionID uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.Where("id = ? AND user_id = ?", submissionID, userID).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// MarkSigned flips a submission to completed by its DocuSeal id; used by the
// signature webhook.
func (s *SubmissionService) MarkSigned(docusealSubmissionID string) error {
	result := s.db.Model(&models.Submission{}).
		Where("docuseal_submission_id = ?", docusealSubmissionID).
		Update("signing_status", models.SigningStatusCompleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

func generateClaimToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate claim token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

var consentDurations = map[string]func(time.Time) time.Time{
	"30days":  func(t time.Time) time.Time { return t.AddDate(0, 0, 30) },
	"90days":  func(t time.Time) time.Time { return t.AddDate(0, 0, 90) },
	"6months": func(t time.Time) time.Time { return t.AddDate(0, 6, 0) },
	"1year":   func(t time.Time) time.Time { return t.AddDate(1, 0, 0) },
	"2years":  func(t time.Time) time.Time { return t.AddDate(2, 0, 0) },
}

// consentExpiry maps a duration option to an absolute expiry. Unknown
// options (including "indefinite") yield no expiry.
func consentExpiry(duration string, from time.Time) (time.Time, bool) {
	fn, ok := consentDurations[duration]
	if !ok {
		return time.Time{}, false
	}
	return fn(from), true
}
