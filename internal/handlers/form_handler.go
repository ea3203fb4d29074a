package handlers

import (
	"errors"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/models"
	"github.com/clinicpass/clinicpass-backend/internal/services"
	"github.com/clinicpass/clinicpass-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// FormHandler exposes form template CRUD to provider organizations. All
// routes run behind the org middleware, so the org id is always resolved.
type FormHandler struct {
	formService  *services.FormService
	auditService *services.AuditService
}

func NewFormHandler(formService *services.FormService, auditService *services.AuditService) *FormHandler {
	return &FormHandler{formService: formService, auditService: auditService}
}

func (h *FormHandler) List(c *fiber.Ctx) error {
	forms, err := h.formService.List(tenant.GetOrgID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list forms",
		})
	}
	return c.JSON(fiber.Map{"forms": forms})
}

func (h *FormHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid form id",
		})
	}

	form, err := h.formService.Get(tenant.GetOrgID(c), id)
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load form",
		})
	}

	return c.JSON(form)
}

func (h *FormHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateFormRequest
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

	form, err := h.formService.Create(tenant.GetOrgID(c), &req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create form",
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditFormCreate, "form_template", form.ID.String(),
		map[string]interface{}{"title": form.Title}, c.IP(), c.Get("User-Agent"))

	return c.Status(fiber.StatusCreated).JSON(form)
}

func (h *FormHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid form id",
		})
	}

	var req dto.UpdateFormRequest
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

	form, err := h.formService.Update(tenant.GetOrgID(c), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFormNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrUnknownFieldDefinition):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update form",
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditFormUpdate, "form_template", form.ID.String(),
		map[string]interface{}{"version": form.Version, "fields_replaced": req.Fields != nil}, c.IP(), c.Get("User-Agent"))

	return c.JSON(form)
}

func (h *FormHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid form id",
		})
	}

	if err := h.formService.Delete(tenant.GetOrgID(c), id); err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete form",
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditFormDelete, "form_template", id.String(),
		nil, c.IP(), c.Get("User-Agent"))

	return c.JSON(fiber.Map{"message": "Form deleted"})
}

// SetDocusealMapping attaches a DocuSeal template id and field mapping to
// the form, enabling the signing step after submission.
func (h *FormHandler) SetDocusealMapping(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid form id",
		})
	}

	var req dto.DocusealMappingRequest
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

	form, err := h.formService.SetDocusealMapping(tenant.GetOrgID(c), id, &req)
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save signing mapping",
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditFormDocuseal, "form_template", form.ID.String(),
		map[string]interface{}{"template_id": req.TemplateID}, c.IP(), c.Get("User-Agent"))

	return c.JSON(form)
}
