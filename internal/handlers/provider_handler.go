package handlers

import (
	"errors"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/models"
	"github.com/clinicpass/clinicpass-backend/internal/services"
	"github.com/clinicpass/clinicpass-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// ProviderHandler covers the provider registration flow and organization
// settings. Registration is two-phase: progress saved server-side by email,
// completed once with credentials and practice details.
type ProviderHandler struct {
	providerService *services.ProviderService
	auditService    *services.AuditService
}

func NewProviderHandler(providerService *services.ProviderService, auditService *services.AuditService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService, auditService: auditService}
}

// SaveRegistration upserts in-progress registration state so a provider can
// resume on another device.
func (h *ProviderHandler) SaveRegistration(c *fiber.Ctx) error {
	var req dto.SaveRegistrationRequest
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

	if err := h.providerService.SaveRegistration(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save registration",
		})
	}

	return c.JSON(fiber.Map{"message": "Registration progress saved"})
}

// CompleteRegistration creates the provider account and a pending
// organization awaiting admin approval.
func (h *ProviderHandler) CompleteRegistration(c *fiber.Ctx) error {
	var req dto.CompleteRegistrationRequest
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

	auth, org, err := h.providerService.CompleteRegistration(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to complete registration",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"auth":         auth,
		"organization": org,
	})
}

// Me returns the caller's organization and membership role; the frontend
// uses the org status to route pending providers to the waiting screen.
func (h *ProviderHandler) Me(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	member, err := h.providerService.Membership(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotOrgMember) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load membership",
		})
	}

	return c.JSON(fiber.Map{
		"organization": member.Organization,
		"role":         member.Role,
	})
}

func (h *ProviderHandler) GetSettings(c *fiber.Ctx) error {
	org, err := h.providerService.GetOrganization(tenant.GetOrgID(c))
	if err != nil {
		if errors.Is(err, services.ErrOrgNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load organization",
		})
	}
	return c.JSON(org)
}

// UpdateSettings is owner-only; staff get a 403 from the service.
func (h *ProviderHandler) UpdateSettings(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateSettingsRequest
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

	org, err := h.providerService.UpdateSettings(tenant.GetOrgID(c), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOwnerOnly):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrOrgNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update organization",
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditOrgUpdate, "organization", org.ID.String(),
		nil, c.IP(), c.Get("User-Agent"))

	return c.JSON(org)
}
