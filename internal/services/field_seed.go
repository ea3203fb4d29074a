package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/fieldtypes"
	"github.com/clinicpass/clinicpass-backend/internal/models"
)

type seedField struct {
	Name                    string
	Label                   string
	Description             string
	FieldType               string
	Category                string
	Options                 []fieldtypes.Option
	SpecialPersonalInfo     bool
	RequiresExplicitConsent bool
}

// Core tier of the shared field library. Industry-specific categories start
// empty; admins grow them through the API.
var coreFields = []seedField{
	{Name: "firstName", Label: "First Name", FieldType: fieldtypes.TypeText, Category: models.CategoryPersonal},
	{Name: "lastName", Label: "Last Name", FieldType: fieldtypes.TypeText, Category: models.CategoryPersonal},
	{Name: "dateOfBirth", Label: "Date of Birth", FieldType: fieldtypes.TypeDate, Category: models.CategoryPersonal},
	{Name: "gender", Label: "Gender", FieldType: fieldtypes.TypeSelect, Category: models.CategoryPersonal,
		Options: []fieldtypes.Option{{Value: "female", Label: "Female"}, {Value: "male", Label: "Male"}, {Value: "other", Label: "Other"}, {Value: "preferNot", Label: "Prefer not to say"}}},
	{Name: "idNumber", Label: "ID Number", Description: "National identity number", FieldType: fieldtypes.TypeText, Category: models.CategoryIdentity, SpecialPersonalInfo: true},
	{Name: "passportNumber", Label: "Passport Number", FieldType: fieldtypes.TypeText, Category: models.CategoryIdentity, SpecialPersonalInfo: true},
	{Name: "email", Label: "Email Address", FieldType: fieldtypes.TypeEmail, Category: models.CategoryContact},
	{Name: "cellphone", Label: "Cellphone Number", FieldType: fieldtypes.TypePhone, Category: models.CategoryContact},
	{Name: "homeAddress", Label: "Home Street Address", FieldType: fieldtypes.TypeAddress, Category: models.CategoryAddress},
	{Name: "emergencyContactName", Label: "Emergency Contact Name", FieldType: fieldtypes.TypeText, Category: models.CategoryEmergency},
	{Name: "emergencyContactPhone", Label: "Emergency Contact Phone", FieldType: fieldtypes.TypePhone, Category: models.CategoryEmergency},
	{Name: "medicalAidScheme", Label: "Medical Aid Scheme", FieldType: fieldtypes.TypeText, Category: models.CategoryMedicalAid},
	{Name: "medicalAidNumber", Label: "Medical Aid Number", FieldType: fieldtypes.TypeText, Category: models.CategoryMedicalAid, SpecialPersonalInfo: true},
	{Name: "allergies", Label: "Known Allergies", FieldType: fieldtypes.TypeTextarea, Category: models.CategoryMedicalHistory, SpecialPersonalInfo: true, RequiresExplicitConsent: true},
	{Name: "chronicConditions", Label: "Chronic Conditions", FieldType: fieldtypes.TypeTextarea, Category: models.CategoryMedicalHistory, SpecialPersonalInfo: true, RequiresExplicitConsent: true},
	{Name: "currentMedication", Label: "Current Medication", FieldType: fieldtypes.TypeTextarea, Category: models.CategoryMedicalHistory, SpecialPersonalInfo: true, RequiresExplicitConsent: true},
	{Name: "smokingStatus", Label: "Smoking Status", FieldType: fieldtypes.TypeRadio, Category: models.CategoryLifestyle,
		Options: []fieldtypes.Option{{Value: "never", Label: "Never"}, {Value: "former", Label: "Former"}, {Value: "current", Label: "Current"}}},
	{Name: "patientSignature", Label: "Patient Signature", FieldType: fieldtypes.TypeSignature, Category: models.CategoryConsent},
}

// SeedCoreLibrary creates the core field definitions that do not exist yet.
// Address fields go through Create so they expand normally.
func (s *FieldService) SeedCoreLibrary() error {
	for _, seed := range coreFields {
		var existing models.FieldDefinition
		if err := s.db.Where("name = ?", seed.Name).First(&existing).Error; err == nil {
			continue
		}

		req := &dto.CreateFieldRequest{
			Name:                    seed.Name,
			Label:                   seed.Label,
			Description:             seed.Description,
			FieldType:               seed.FieldType,
			Category:                seed.Category,
			SpecialPersonalInfo:     seed.SpecialPersonalInfo,
			RequiresExplicitConsent: seed.RequiresExplicitConsent,
		}
		if len(seed.Options) > 0 {
			b, err := json.Marshal(fieldtypes.SelectConfig{Options: seed.Options})
			if err != nil {
				return fmt.Errorf("marshal options for %s: %w", seed.Name, err)
			}
			req.Config = datatypes.JSON(b)
		}

		if _, err := s.Create(req); err != nil {
			// Concurrent boot of a second instance can lose the race; the
			// unique index makes that benign.
			if errors.Is(err, ErrFieldNameTaken) {
				continue
			}
			return fmt.Errorf("seed field %s: %w", seed.Name, err)
		}
		slog.Info("seeded field definition", "name", seed.Name, "category", seed.Category)
	}
	return nil
}
