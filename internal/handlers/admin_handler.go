package handlers

import (
	"errors"
	"time"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/models"
	"github.com/clinicpass/clinicpass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler covers platform administration: provider approval and the
// audit trail.
type AdminHandler struct {
	providerService *services.ProviderService
	auditService    *services.AuditService
}

func NewAdminHandler(providerService *services.ProviderService, auditService *services.AuditService) *AdminHandler {
	return &AdminHandler{providerService: providerService, auditService: auditService}
}

func (h *AdminHandler) ListProviders(c *fiber.Ctx) error {
	orgs, total, err := h.providerService.ListOrganizations(services.ProviderFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list providers",
		})
	}

	return c.JSON(fiber.Map{"organizations": orgs, "total": total})
}

// ReviewProvider approves or rejects a pending organization. Decisions are
// final; re-reviewing returns a conflict.
func (h *AdminHandler) ReviewProvider(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid organization id",
		})
	}

	var req dto.ReviewProviderRequest
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

	org, err := h.providerService.Review(orgID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrgNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrAlreadyReviewed):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to review organization",
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditOrgReview, "organization", org.ID.String(),
		map[string]interface{}{"status": req.Status, "note": req.Note}, c.IP(), c.Get("User-Agent"))

	return c.JSON(org)
}

func auditFilterFromQuery(c *fiber.Ctx) services.AuditFilter {
	filter := services.AuditFilter{
		Action:       c.Query("action"),
		ActorEmail:   c.Query("actor_email"),
		ResourceType: c.Query("resource_type"),
		Limit:        c.QueryInt("limit", 50),
		Offset:       c.QueryInt("offset", 0),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &t
		}
	}
	return filter
}

func (h *AdminHandler) ListAuditLogs(c *fiber.Ctx) error {
	logs, total, err := h.auditService.List(auditFilterFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list audit logs",
		})
	}

	return c.JSON(fiber.Map{"logs": logs, "total": total})
}

// ExportAuditLogs downloads the filtered trail as CSV for compliance
// reviews.
func (h *AdminHandler) ExportAuditLogs(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="audit-logs.csv"`)

	if err := h.auditService.ExportCSV(c.Response().BodyWriter(), auditFilterFromQuery(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to export audit logs",
		})
	}
	return nil
}
