package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/models"
	"github.com/clinicpass/clinicpass-backend/internal/tenant"
)

var (
	ErrFormNotFound           = errors.New("form template not found")
	ErrUnknownFieldDefinition = errors.New("unknown field definition in field set")
)

type FormService struct {
	db *gorm.DB
}

func NewFormService(db *gorm.DB) *FormService {
	return &FormService{db: db}
}

func (s *FormService) List(orgID uuid.UUID) ([]models.FormTemplate, error) {
	var forms []models.FormTemplate
	err := s.db.Scopes(tenant.ForOrg(orgID)).Order("created_at DESC").Find(&forms).Error
	return forms, err
}

// Get loads a template with its field associations in render order.
func (s *FormService) Get(orgID, id uuid.UUID) (*models.FormTemplate, error) {
	var form models.FormTemplate
	err := s.db.Scopes(tenant.ForOrg(orgID)).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("form_fields.sort_order")
		}).
		Preload("Fields.FieldDefinition").
		First(&form, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return &form, nil
}

func (s *FormService) Create(orgID uuid.UUID, req *dto.CreateFormRequest) (*models.FormTemplate, error) {
	form := models.FormTemplate{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Title:          req.Title,
		Description:    req.Description,
		ConsentClause:  req.ConsentClause,
		IsActive:       true,
		Version:        1,
	}
	if err := s.db.Create(&form).Error; err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}
	return &form, nil
}

// Update patches template metadata and, when req.Fields is non-nil, replaces
// the entire FormField set: the old associations are deleted, the new ones
// inserted, and the version is bumped. No incremental patching.
func (s *FormService) Update(orgID, id uuid.UUID, req *dto.UpdateFormRequest) (*models.FormTemplate, error) {
	form, err := s.Get(orgID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ConsentClause != nil {
		updates["consent_clause"] = *req.ConsentClause
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.ConsentDurationEnabled != nil {
		updates["consent_duration_enabled"] = *req.ConsentDurationEnabled
	}
	if req.ConsentDurationOptions != nil {
		b, err := json.Marshal(req.ConsentDurationOptions)
		if err != nil {
			return nil, fmt.Errorf("marshal consent durations: %w", err)
		}
		updates["consent_duration_options"] = datatypes.JSON(b)
	}
	if req.ConsentDurationDefault != nil {
		updates["consent_duration_default"] = *req.ConsentDurationDefault
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(form).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Fields == nil {
			return nil
		}

		if err := s.validateFieldSet(tx, req.Fields); err != nil {
			return err
		}

		if err := tx.Where("form_template_id = ?", form.ID).Delete(&models.FormField{}).Error; err != nil {
			return err
		}

		for _, input := range req.Fields {
			span := input.ColumnSpan
			if span < 1 || span > 8 {
				span = 8
			}
			assoc := models.FormField{
				ID:                uuid.New(),
				FormTemplateID:    form.ID,
				FieldDefinitionID: input.FieldDefinitionID,
				LabelOverride:     input.LabelOverride,
				HelpText:          input.HelpText,
				IsRequired:        input.IsRequired,
				SortOrder:         input.SortOrder,
				Section:           input.Section,
				ColumnSpan:        span,
				GroupID:           input.GroupID,
			}
			if err := tx.Create(&assoc).Error; err != nil {
				return fmt.Errorf("create form field: %w", err)
			}
		}

		return tx.Model(form).UpdateColumn("version", gorm.Expr("version + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(orgID, id)
}

func (s *FormService) validateFieldSet(tx *gorm.DB, inputs []dto.FormFieldInput) error {
	if len(inputs) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, input := range inputs {
		ids = append(ids, input.FieldDefinitionID)
	}
	var count int64
	if err := tx.Model(&models.FieldDefinition{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	unique := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if count != int64(len(unique)) {
		return ErrUnknownFieldDefinition
	}
	return nil
}

func (s *FormService) Delete(orgID, id uuid.UUID) error {
	form, err := s.Get(orgID, id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_template_id = ?", form.ID).Delete(&models.FormField{}).Error; err != nil {
			return err
		}
		return tx.Delete(form).Error
	})
}

// SetDocusealMapping stores the e-signature template id and field mapping.
func (s *FormService) SetDocusealMapping(orgID, id uuid.UUID, req *dto.DocusealMappingRequest) (*models.FormTemplate, error) {
	form, err := s.Get(orgID, id)
	if err != nil {
		return nil, err
	}
	mapping := req.FieldMapping
	if mapping == nil {
		mapping = datatypes.JSON(`{}`)
	}
	err = s.db.Model(form).Updates(map[string]interface{}{
		"docuseal_template_id":   req.TemplateID,
		"docuseal_field_mapping": mapping,
	}).Error
	if err != nil {
		return nil, err
	}
	return form, nil
}
