package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clinicpass/clinicpass-backend/internal/models"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Actor identifies who performed an audited action. A nil ID with a non-empty
// email covers token-authenticated admin calls.
type Actor struct {
	ID    *uuid.UUID
	Email string
}

// Record inserts one audit row. Failures are logged, never propagated: an
// audit insert must not fail the action it describes.
func (s *AuditService) Record(actor Actor, action, resourceType, resourceID string, metadata map[string]interface{}, ip, userAgent string) {
	entry := models.AuditLog{
		ActorID:      actor.ID,
		ActorEmail:   actor.Email,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ip,
		UserAgent:    userAgent,
	}
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			entry.Metadata = datatypes.JSON(b)
		}
	}
	if err := s.db.Create(&entry).Error; err != nil {
		slog.Error("audit record failed", "action", action, "resource", resourceType, "error", err)
	}
}

type AuditFilter struct {
	Action       string
	ActorEmail   string
	ResourceType string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

func (s *AuditService) List(filter AuditFilter) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{})
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ActorEmail != "" {
		query = query.Where("actor_email = ?", filter.ActorEmail)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}

	var logs []models.AuditLog
	err := query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&logs).Error
	return logs, total, err
}

// ExportCSV streams the filtered audit trail (no pagination) as CSV.
func (s *AuditService) ExportCSV(w io.Writer, filter AuditFilter) error {
	query := s.db.Model(&models.AuditLog{})
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ActorEmail != "" {
		query = query.Where("actor_email = ?", filter.ActorEmail)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", filter.To)
	}

	var logs []models.AuditLog
	if err := query.Order("created_at DESC").Find(&logs).Error; err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "actor_email", "action", "resource_type", "resource_id", "ip_address", "user_agent", "metadata"}); err != nil {
		return err
	}
	for _, entry := range logs {
		record := []string{
			entry.CreatedAt.UTC().Format(time.RFC3339),
			entry.ActorEmail,
			entry.Action,
			entry.ResourceType,
			entry.ResourceID,
			entry.IPAddress,
			entry.UserAgent,
			string(entry.Metadata),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}
	return nil
}
