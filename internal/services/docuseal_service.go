package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/clinicpass/clinicpass-backend/internal/models"
)

var ErrDocusealNotConfigured = errors.New("docuseal is not configured")

// DocusealService is a thin client for the DocuSeal e-signature API. It
// creates signing submissions from a template plus the form's field mapping;
// completion arrives asynchronously via webhook.
type DocusealService struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

func NewDocusealService(apiURL, apiKey string) *DocusealService {
	return &DocusealService{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether an API key is present. Without one the signing
// step is skipped platform-wide.
func (s *DocusealService) Configured() bool {
	return s.apiKey != ""
}

type docusealSubmitter struct {
	Email  string               `json:"email"`
	Fields []docusealFieldValue `json:"fields,omitempty"`
}

type docusealFieldValue struct {
	Name    string      `json:"name"`
	Default interface{} `json:"default_value"`
}

type docusealCreateRequest struct {
	TemplateID string              `json:"template_id"`
	SendEmail  bool                `json:"send_email"`
	Submitters []docusealSubmitter `json:"submitters"`
}

type docusealCreateResponse struct {
	ID         json.Number `json:"id"`
	Submitters []struct {
		EmbedSrc string `json:"embed_src"`
	} `json:"submitters"`
}

// CreateSigningRequest maps submitted form values onto the DocuSeal
// template's fields (via the form's stored mapping) and opens a signing
// submission. Returns the DocuSeal submission id and the signer's URL.
func (s *DocusealService) CreateSigningRequest(form *models.FormTemplate, values map[string]interface{}, signerEmail string) (string, string, error) {
	if !s.Configured() {
		return "", "", ErrDocusealNotConfigured
	}
	if form.DocusealTemplateID == "" {
		return "", "", ErrDocusealNotConfigured
	}

	// Mapping: docuseal field name -> form field definition name.
	mapping := make(map[string]string)
	if len(form.DocusealFieldMapping) > 0 {
		if err := json.Unmarshal(form.DocusealFieldMapping, &mapping); err != nil {
			mapping = map[string]string{}
		}
	}

	submitter := docusealSubmitter{Email: signerEmail}
	for docField, formField := range mapping {
		if value, ok := values[formField]; ok {
			submitter.Fields = append(submitter.Fields, docusealFieldValue{Name: docField, Default: value})
		}
	}
	if submitter.Email == "" {
		// Anonymous kiosk flow: DocuSeal requires an address, use the one
		// captured on the form when present.
		if email, ok := values[emailFieldName].(string); ok {
			submitter.Email = email
		}
	}

	body, err := json.Marshal(docusealCreateRequest{
		TemplateID: form.DocusealTemplateID,
		SendEmail:  false,
		Submitters: []docusealSubmitter{submitter},
	})
	if err != nil {
		return "", "", fmt.Errorf("marshal docuseal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL+"/submissions", bytes.NewBuffer(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Auth-Token", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("docuseal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", "", fmt.Errorf("docuseal returned status %d", resp.StatusCode)
	}

	var parsed docusealCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", "", fmt.Errorf("decode docuseal response: %w", err)
	}

	signingURL := ""
	if len(parsed.Submitters) > 0 {
		signingURL = parsed.Submitters[0].EmbedSrc
	}
	return parsed.ID.String(), signingURL, nil
}

// emailFieldName is the library field the anonymous signer address falls
// back to.
const emailFieldName = "email"

var _ SigningClient = (*DocusealService)(nil)
