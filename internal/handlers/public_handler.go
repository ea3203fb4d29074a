package handlers

import (
	"errors"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/models"
	"github.com/clinicpass/clinicpass-backend/internal/services"
	"github.com/clinicpass/clinicpass-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// PublicHandler serves the patient-facing check-in flow reached by scanning
// a QR code. Authentication is optional: a valid bearer token gets profile
// prefill and diff-driven sync, anonymous callers get a claim token.
type PublicHandler struct {
	qrService         *services.QRService
	formService       *services.FormService
	providerService   *services.ProviderService
	profileService    *services.ProfileService
	submissionService *services.SubmissionService
	auditService      *services.AuditService
}

func NewPublicHandler(
	qrService *services.QRService,
	formService *services.FormService,
	providerService *services.ProviderService,
	profileService *services.ProfileService,
	submissionService *services.SubmissionService,
	auditService *services.AuditService,
) *PublicHandler {
	return &PublicHandler{
		qrService:         qrService,
		formService:       formService,
		providerService:   providerService,
		profileService:    profileService,
		submissionService: submissionService,
		auditService:      auditService,
	}
}

// resolve loads the QR code and its form for a short code. On failure the
// response has already been written and ok is false.
func (h *PublicHandler) resolve(c *fiber.Ctx) (*models.QRCode, *models.FormTemplate, bool) {
	qr, err := h.qrService.Resolve(c.Params("shortCode"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQRNotFound):
			_ = c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Form not found",
			})
		case errors.Is(err, services.ErrQRInactive):
			_ = c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{
				Error: true, Message: "This check-in link is no longer active",
			})
		default:
			_ = c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to resolve form",
			})
		}
		return nil, nil, false
	}

	form, err := h.formService.Get(qr.OrganizationID, qr.FormTemplateID)
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Form not found",
			})
		} else {
			_ = c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to load form",
			})
		}
		return nil, nil, false
	}
	if !form.IsActive {
		_ = c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{
			Error: true, Message: "This form is no longer active",
		})
		return nil, nil, false
	}
	return qr, form, true
}

// GetForm renders the public form: sections, the 8-column grid layout,
// grouped address blocks, and profile prefill for logged-in patients.
func (h *PublicHandler) GetForm(c *fiber.Ctx) error {
	qr, form, ok := h.resolve(c)
	if !ok {
		return nil
	}

	orgName := ""
	if org, err := h.providerService.GetOrganization(qr.OrganizationID); err == nil {
		orgName = org.Name
	}

	var profile map[string]interface{}
	if userID, err := tenant.GetUserID(c); err == nil {
		if user, err := h.profileService.GetUser(userID); err == nil {
			profile = user.ProfileMap()
		}
	}

	return c.JSON(services.RenderForm(form, orgName, profile))
}

// Submit validates and stores a check-in. Validation failures come back as
// a 422 with per-field messages; consent failures use the "_consent" key.
func (h *PublicHandler) Submit(c *fiber.Ctx) error {
	_, form, ok := h.resolve(c)
	if !ok {
		return nil
	}

	var req dto.SubmitFormRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	var user *models.User
	if userID, err := tenant.GetUserID(c); err == nil {
		user, _ = h.profileService.GetUser(userID)
	}

	resp, fieldErrors, err := h.submissionService.Submit(form, user, &req, c.IP(), c.Get("User-Agent"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save submission",
		})
	}
	if len(fieldErrors) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Error:   true,
			Message: "Please correct the highlighted fields",
			Fields:  fieldErrors,
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditSubmissionCreate, "submission", resp.SubmissionID.String(),
		map[string]interface{}{"form_id": form.ID.String(), "next_state": resp.NextState}, c.IP(), c.Get("User-Agent"))

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Claim attaches an anonymous submission to the caller's new account by
// its one-time claim token.
func (h *PublicHandler) Claim(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ClaimSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := dto.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	submission, err := h.profileService.Claim(userID, req.ClaimToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidClaimToken) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to claim submission",
		})
	}

	return c.JSON(submission)
}
