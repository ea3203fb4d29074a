package services

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/models"
	"github.com/clinicpass/clinicpass-backend/internal/tenant"
)

var (
	ErrQRNotFound     = errors.New("qr code not found")
	ErrShortCodeSpace = errors.New("could not allocate a unique short code")
	ErrQRInactive     = errors.New("qr code is inactive")
)

// shortCodeAlphabet avoids ambiguous characters (0/O, 1/I/l).
const shortCodeAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"
const shortCodeLength = 8
const shortCodeRetries = 5

type QRService struct {
	db            *gorm.DB
	publicBaseURL string
}

func NewQRService(db *gorm.DB, publicBaseURL string) *QRService {
	return &QRService{db: db, publicBaseURL: publicBaseURL}
}

func generateShortCode() (string, error) {
	buf := make([]byte, shortCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate short code: %w", err)
	}
	for i, b := range buf {
		buf[i] = shortCodeAlphabet[int(b)%len(shortCodeAlphabet)]
	}
	return string(buf), nil
}

// Create allocates a QR code for a form, retrying the random short code up
// to five times on collision before failing the request.
func (s *QRService) Create(orgID, formID uuid.UUID, req *dto.CreateQRRequest) (*models.QRCode, error) {
	var form models.FormTemplate
	if err := s.db.Scopes(tenant.ForOrg(orgID)).First(&form, "id = ?", formID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	for attempt := 0; attempt < shortCodeRetries; attempt++ {
		code, err := generateShortCode()
		if err != nil {
			return nil, err
		}

		qr := models.QRCode{
			ID:             uuid.New(),
			FormTemplateID: form.ID,
			OrganizationID: orgID,
			ShortCode:      code,
			Label:          req.Label,
			IsActive:       true,
		}
		if err := s.db.Create(&qr).Error; err != nil {
			var existing models.QRCode
			if lookupErr := s.db.Where("short_code = ?", code).First(&existing).Error; lookupErr == nil {
				continue // collision, retry with a fresh code
			}
			return nil, fmt.Errorf("create qr code: %w", err)
		}
		return &qr, nil
	}
	return nil, ErrShortCodeSpace
}

func (s *QRService) List(orgID, formID uuid.UUID) ([]models.QRCode, error) {
	var codes []models.QRCode
	err := s.db.Scopes(tenant.ForOrg(orgID)).
		Where("form_template_id = ?", formID).
		Order("created_at DESC").
		Find(&codes).Error
	return codes, err
}

func (s *QRService) Get(orgID, formID, qrID uuid.UUID) (*models.QRCode, error) {
	var qr models.QRCode
	err := s.db.Scopes(tenant.ForOrg(orgID)).
		Where("form_template_id = ?", formID).
		First(&qr, "id = ?", qrID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQRNotFound
		}
		return nil, err
	}
	return &qr, nil
}

func (s *QRService) Update(orgID, formID, qrID uuid.UUID, req *dto.UpdateQRRequest) (*models.QRCode, error) {
	qr, err := s.Get(orgID, formID, qrID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Label != nil {
		updates["label"] = *req.Label
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return qr, nil
	}
	if err := s.db.Model(qr).Updates(updates).Error; err != nil {
		return nil, err
	}
	return qr, nil
}

func (s *QRService) Delete(orgID, formID, qrID uuid.UUID) error {
	qr, err := s.Get(orgID, formID, qrID)
	if err != nil {
		return err
	}
	return s.db.Delete(qr).Error
}

// PublicURL is the link encoded into the QR image.
func (s *QRService) PublicURL(qr *models.QRCode) string {
	return s.publicBaseURL + "/f/" + qr.ShortCode
}

// PNG renders the QR image for a code.
func (s *QRService) PNG(qr *models.QRCode, size int) ([]byte, error) {
	if size <= 0 || size > 2048 {
		size = 512
	}
	return qrcode.Encode(s.PublicURL(qr), qrcode.Medium, size)
}

// Resolve looks up an active QR code by short code and bumps its scan count.
func (s *QRService) Resolve(shortCode string) (*models.QRCode, error) {
	var qr models.QRCode
	if err := s.db.Where("short_code = ?", shortCode).First(&qr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQRNotFound
		}
		return nil, err
	}
	if !qr.IsActive {
		return nil, ErrQRInactive
	}
	if err := s.db.Model(&qr).UpdateColumn("scan_count", gorm.Expr("scan_count + 1")).Error; err != nil {
		return nil, err
	}
	return &qr, nil
}
