package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/fieldtypes"
	"github.com/clinicpass/clinicpass-backend/internal/models"
)

var (
	ErrFieldNotFound    = errors.New("field definition not found")
	ErrFieldNameTaken   = errors.New("field name already exists")
	ErrInvalidFieldName = errors.New("field name must start lowercase and contain only letters and digits")
	ErrInvalidFieldType = errors.New("unknown field type")
)

type FieldService struct {
	db *gorm.DB
}

func NewFieldService(db *gorm.DB) *FieldService {
	return &FieldService{db: db}
}

type FieldFilter struct {
	Category  string
	FieldType string
	Search    string
	Active    *bool
	Limit     int
	Offset    int
}

func (s *FieldService) List(filter FieldFilter) ([]models.FieldDefinition, int64, error) {
	query := s.db.Model(&models.FieldDefinition{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.FieldType != "" {
		query = query.Where("field_type = ?", filter.FieldType)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(label) LIKE ?", like, like)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}

	var fields []models.FieldDefinition
	err := query.Order("category, sort_order, name").Limit(filter.Limit).Offset(filter.Offset).Find(&fields).Error
	return fields, total, err
}

func (s *FieldService) Get(id uuid.UUID) (*models.FieldDefinition, error) {
	var field models.FieldDefinition
	if err := s.db.First(&field, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}
	return &field, nil
}

// Create inserts a new field definition. Address-typed fields additionally
// expand into seven linked sub-fields inside the same transaction.
func (s *FieldService) Create(req *dto.CreateFieldRequest) (*models.FieldDefinition, error) {
	if !fieldtypes.NamePattern.MatchString(req.Name) {
		return nil, ErrInvalidFieldName
	}
	if !fieldtypes.IsValid(req.FieldType) {
		return nil, ErrInvalidFieldType
	}

	var existing models.FieldDefinition
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, ErrFieldNameTaken
	}

	field := models.FieldDefinition{
		ID:                      uuid.New(),
		Name:                    req.Name,
		Label:                   req.Label,
		Description:             req.Description,
		FieldType:               req.FieldType,
		Category:                req.Category,
		Config:                  req.Config,
		Validation:              req.Validation,
		IsActive:                true,
		SpecialPersonalInfo:     req.SpecialPersonalInfo,
		RequiresExplicitConsent: req.RequiresExplicitConsent,
	}
	if field.Config == nil {
		field.Config = datatypes.JSON(`{}`)
	}
	if field.Validation == nil {
		field.Validation = datatypes.JSON(`{}`)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		sortOrder, err := s.resolveSortOrder(tx, req, field.FieldType)
		if err != nil {
			return err
		}
		field.SortOrder = sortOrder

		if err := tx.Create(&field).Error; err != nil {
			return fmt.Errorf("create field: %w", err)
		}

		if field.FieldType == fieldtypes.TypeAddress {
			return s.expandAddressGroup(tx, &field)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &field, nil
}

// resolveSortOrder positions the new field within its category. Inserting
// before existing fields shifts the tail: by 8 for address fields, reserving
// a contiguous block for the parent plus its seven linked sub-fields, by 1
// otherwise.
func (s *FieldService) resolveSortOrder(tx *gorm.DB, req *dto.CreateFieldRequest, fieldType string) (int, error) {
	shift := 1
	if fieldType == fieldtypes.TypeAddress {
		shift = 8
	}

	if req.InsertAfterFieldID != nil {
		var after models.FieldDefinition
		if err := tx.First(&after, "id = ?", *req.InsertAfterFieldID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrFieldNotFound
			}
			return 0, err
		}
		position := after.SortOrder + 1
		if err := tx.Model(&models.FieldDefinition{}).
			Where("category = ? AND sort_order >= ?", req.Category, position).
			UpdateColumn("sort_order", gorm.Expr("sort_order + ?", shift)).Error; err != nil {
			return 0, err
		}
		return position, nil
	}

	if req.SortOrder != nil && *req.SortOrder == 0 {
		if err := tx.Model(&models.FieldDefinition{}).
			Where("category = ?", req.Category).
			UpdateColumn("sort_order", gorm.Expr("sort_order + ?", shift)).Error; err != nil {
			return 0, err
		}
		return 0, nil
	}

	if req.SortOrder != nil {
		return *req.SortOrder, nil
	}

	var max struct{ Max int }
	if err := tx.Model(&models.FieldDefinition{}).
		Select("COALESCE(MAX(sort_order), -1) AS max").
		Where("category = ?", req.Category).
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max.Max + 1, nil
}

// expandAddressGroup creates the seven linked sub-fields for an address
// parent and writes their names into the parent's config. Creation is
// idempotent against name collisions: an existing field with the target name
// is silently reused in the linkage map, whatever its shape.
func (s *FieldService) expandAddressGroup(tx *gorm.DB, parent *models.FieldDefinition) error {
	namePrefix := fieldtypes.AddressNamePrefix(parent.Name)
	labelPrefix := fieldtypes.AddressLabelPrefix(parent.Label)

	linked := make(map[string]string, len(fieldtypes.LinkedFieldSpecs))
	sortOrder := parent.SortOrder

	for _, spec := range fieldtypes.LinkedFieldSpecs {
		sortOrder++
		name := fieldtypes.LinkedFieldName(namePrefix, spec)
		linked[spec.Role] = name

		var existing models.FieldDefinition
		if err := tx.Where("name = ?", name).First(&existing).Error; err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		sub := models.FieldDefinition{
			ID:          uuid.New(),
			Name:        name,
			Label:       fieldtypes.LinkedFieldLabel(labelPrefix, spec),
			Description: spec.Description,
			FieldType:   spec.FieldType,
			Category:    parent.Category,
			Config:      datatypes.JSON(`{}`),
			Validation:  datatypes.JSON(`{}`),
			SortOrder:   sortOrder,
			IsActive:    true,
		}
		if err := tx.Create(&sub).Error; err != nil {
			return fmt.Errorf("create linked field %s: %w", name, err)
		}
	}

	cfg := fieldtypes.DecodeAddressConfig(parent.Config)
	cfg.LinkedFields = linked
	parent.Config = fieldtypes.EncodeAddressConfig(cfg)
	return tx.Model(parent).UpdateColumn("config", parent.Config).Error
}

func (s *FieldService) Update(id uuid.UUID, req *dto.UpdateFieldRequest) (*models.FieldDefinition, error) {
	field, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Label != nil {
		updates["label"] = *req.Label
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Config != nil {
		updates["config"] = *req.Config
	}
	if req.Validation != nil {
		updates["validation"] = *req.Validation
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.SpecialPersonalInfo != nil {
		updates["special_personal_info"] = *req.SpecialPersonalInfo
	}
	if req.RequiresExplicitConsent != nil {
		updates["requires_explicit_consent"] = *req.RequiresExplicitConsent
	}
	if len(updates) == 0 {
		return field, nil
	}

	if err := s.db.Model(field).Updates(updates).Error; err != nil {
		return nil, err
	}
	return field, nil
}

// Reorder rewrites sort orders within one category from the given id list.
func (s *FieldService) Reorder(category string, fieldIDs []uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for index, id := range fieldIDs {
			result := tx.Model(&models.FieldDefinition{}).
				Where("id = ? AND category = ?", id, category).
				UpdateColumn("sort_order", index)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
			}
		}
		return nil
	})
}

// DeleteResult reports what a delete actually did per field name.
type DeleteResult struct {
	Deleted     []string `json:"deleted"`
	Deactivated []string `json:"deactivated"`
}

// Delete removes a field definition: hard delete when no form references it,
// deactivation otherwise. With deleteLinked, address parents cascade to their
// linked fields by config-map name lookup, each handled under the same rule.
func (s *FieldService) Delete(id uuid.UUID, deleteLinked bool) (*DeleteResult, error) {
	field, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.deleteOrDeactivate(tx, field, result); err != nil {
			return err
		}

		if deleteLinked && field.FieldType == fieldtypes.TypeAddress {
			cfg := fieldtypes.DecodeAddressConfig(field.Config)
			for _, name := range cfg.LinkedFields {
				var linked models.FieldDefinition
				if err := tx.Where("name = ?", name).First(&linked).Error; err != nil {
					continue
				}
				if err := s.deleteOrDeactivate(tx, &linked, result); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *FieldService) deleteOrDeactivate(tx *gorm.DB, field *models.FieldDefinition, result *DeleteResult) error {
	var refs int64
	if err := tx.Model(&models.FormField{}).
		Where("field_definition_id = ?", field.ID).
		Count(&refs).Error; err != nil {
		return err
	}

	if refs > 0 {
		result.Deactivated = append(result.Deactivated, field.Name)
		return tx.Model(field).UpdateColumn("is_active", false).Error
	}

	result.Deleted = append(result.Deleted, field.Name)
	return tx.Delete(field).Error
}
