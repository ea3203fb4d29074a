package services_test

import (
	"testing"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/fieldtypes"
	"github.com/clinicpass/clinicpass-backend/internal/models"
	"github.com/clinicpass/clinicpass-backend/internal/services"
	"github.com/stretchr/testify/assert"
)

func requiredField(name, fieldType string) models.FormField {
	ff := formField(name, fieldType, "Main")
	ff.IsRequired = true
	return ff
}

func TestValidateSubmission(t *testing.T) {
	consent := "I consent to my information being processed."

	baseForm := func() *models.FormTemplate {
		return &models.FormTemplate{
			Fields: []models.FormField{
				requiredField("firstName", fieldtypes.TypeText),
				formField("email", fieldtypes.TypeEmail, "Main"),
				requiredField("consentCheck", fieldtypes.TypeCheckbox),
			},
		}
	}

	tests := []struct {
		name     string
		form     func() *models.FormTemplate
		req      dto.SubmitFormRequest
		wantKeys []string
	}{
		{
			name: "valid",
			form: baseForm,
			req: dto.SubmitFormRequest{Values: map[string]interface{}{
				"firstName":    "Thandi",
				"email":        "thandi@example.com",
				"consentCheck": true,
			}},
			wantKeys: nil,
		},
		{
			name:     "required_missing",
			form:     baseForm,
			req:      dto.SubmitFormRequest{Values: map[string]interface{}{"consentCheck": true}},
			wantKeys: []string{"firstName"},
		},
		{
			name: "empty_string_counts_as_missing",
			form: baseForm,
			req: dto.SubmitFormRequest{Values: map[string]interface{}{
				"firstName":    "",
				"consentCheck": true,
			}},
			wantKeys: []string{"firstName"},
		},
		{
			name: "unchecked_required_checkbox",
			form: baseForm,
			req: dto.SubmitFormRequest{Values: map[string]interface{}{
				"firstName":    "Thandi",
				"consentCheck": false,
			}},
			wantKeys: []string{"consentCheck"},
		},
		{
			name: "optional_field_with_invalid_value",
			form: baseForm,
			req: dto.SubmitFormRequest{Values: map[string]interface{}{
				"firstName":    "Thandi",
				"email":        "not-an-email",
				"consentCheck": true,
			}},
			wantKeys: []string{"email"},
		},
		{
			name: "consent_clause_without_consent",
			form: func() *models.FormTemplate {
				f := baseForm()
				f.ConsentClause = &consent
				return f
			},
			req: dto.SubmitFormRequest{Values: map[string]interface{}{
				"firstName":    "Thandi",
				"consentCheck": true,
			}},
			wantKeys: []string{dto.ConsentErrorKey},
		},
		{
			name: "field_and_consent_errors_together",
			form: func() *models.FormTemplate {
				f := baseForm()
				f.ConsentClause = &consent
				return f
			},
			req:      dto.SubmitFormRequest{Values: map[string]interface{}{"consentCheck": true}},
			wantKeys: []string{"firstName", dto.ConsentErrorKey},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fieldErrors := services.ValidateSubmission(tt.form(), &tt.req)
			assert.Len(t, fieldErrors, len(tt.wantKeys))
			for _, key := range tt.wantKeys {
				assert.Contains(t, fieldErrors, key)
			}
		})
	}
}

func TestNextState(t *testing.T) {
	tests := []struct {
		name              string
		requiresSignature bool
		authenticated     bool
		hasDiff           bool
		want              string
	}{
		{name: "signing_first", requiresSignature: true, authenticated: true, hasDiff: true, want: dto.StateSigning},
		{name: "signing_anonymous", requiresSignature: true, authenticated: false, hasDiff: false, want: dto.StateSigning},
		{name: "authenticated_with_diff", requiresSignature: false, authenticated: true, hasDiff: true, want: dto.StateProfileSync},
		{name: "authenticated_no_diff", requiresSignature: false, authenticated: true, hasDiff: false, want: dto.StateSubmitted},
		{name: "anonymous_prompted_to_register", requiresSignature: false, authenticated: false, hasDiff: false, want: dto.StateRegistrationPrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.NextState(tt.requiresSignature, tt.authenticated, tt.hasDiff))
		})
	}
}

func TestApplyOutcome(t *testing.T) {
	diffs := []dto.ProfileDiff{{FieldName: "cellphone", SubmittedValue: "0821234567"}}

	tests := []struct {
		name              string
		requiresSignature bool
		authenticated     bool
		diffs             []dto.ProfileDiff
		wantState         string
		wantDiffs         bool
	}{
		{name: "signing_carries_diffs", requiresSignature: true, authenticated: true, diffs: diffs, wantState: dto.StateSigning, wantDiffs: true},
		{name: "profile_sync_with_diffs", authenticated: true, diffs: diffs, wantState: dto.StateProfileSync, wantDiffs: true},
		{name: "authenticated_no_diffs", authenticated: true, wantState: dto.StateSubmitted},
		{name: "anonymous_signing", requiresSignature: true, wantState: dto.StateSigning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := &dto.SubmitFormResponse{}
			services.ApplyOutcome(response, tt.requiresSignature, tt.authenticated, tt.diffs)
			assert.Equal(t, tt.wantState, response.NextState)
			if tt.wantDiffs {
				assert.Equal(t, tt.diffs, response.Diffs)
			} else {
				assert.Empty(t, response.Diffs)
			}
		})
	}
}
