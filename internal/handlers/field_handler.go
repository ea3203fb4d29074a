package handlers

import (
	"errors"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/models"
	"github.com/clinicpass/clinicpass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// FieldHandler exposes the admin field library: the platform-wide catalog
// of field definitions that form templates reference.
type FieldHandler struct {
	fieldService *services.FieldService
	auditService *services.AuditService
}

func NewFieldHandler(fieldService *services.FieldService, auditService *services.AuditService) *FieldHandler {
	return &FieldHandler{fieldService: fieldService, auditService: auditService}
}

func (h *FieldHandler) List(c *fiber.Ctx) error {
	filter := services.FieldFilter{
		Category:  c.Query("category"),
		FieldType: c.Query("field_type"),
		Search:    c.Query("search"),
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
	}
	if active := c.Query("active"); active != "" {
		v := active == "true"
		filter.Active = &v
	}

	fields, total, err := h.fieldService.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list fields",
		})
	}

	return c.JSON(fiber.Map{"fields": fields, "total": total})
}

func (h *FieldHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid field id",
		})
	}

	field, err := h.fieldService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrFieldNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load field",
		})
	}

	return c.JSON(field)
}

func (h *FieldHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateFieldRequest
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

	field, err := h.fieldService.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFieldNameTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidFieldName), errors.Is(err, services.ErrInvalidFieldType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create field",
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditFieldCreate, "field_definition", field.ID.String(),
		map[string]interface{}{"name": field.Name, "field_type": field.FieldType}, c.IP(), c.Get("User-Agent"))

	return c.Status(fiber.StatusCreated).JSON(field)
}

func (h *FieldHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid field id",
		})
	}

	var req dto.UpdateFieldRequest
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

	field, err := h.fieldService.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrFieldNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update field",
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditFieldUpdate, "field_definition", field.ID.String(),
		map[string]interface{}{"name": field.Name}, c.IP(), c.Get("User-Agent"))

	return c.JSON(field)
}

func (h *FieldHandler) Reorder(c *fiber.Ctx) error {
	var req dto.ReorderFieldsRequest
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

	if err := h.fieldService.Reorder(req.Category, req.FieldIDs); err != nil {
		if errors.Is(err, services.ErrFieldNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to reorder fields",
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditFieldReorder, "field_definition", "",
		map[string]interface{}{"category": req.Category, "count": len(req.FieldIDs)}, c.IP(), c.Get("User-Agent"))

	return c.JSON(fiber.Map{"message": "Fields reordered"})
}

// Delete removes a field definition, deactivating instead when any form
// template still references it. For address fields ?delete_linked=true
// cascades to the expanded sub-fields.
func (h *FieldHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid field id",
		})
	}

	deleteLinked := c.Query("delete_linked") == "true"

	result, err := h.fieldService.Delete(id, deleteLinked)
	if err != nil {
		if errors.Is(err, services.ErrFieldNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete field",
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditFieldDelete, "field_definition", id.String(),
		map[string]interface{}{"deleted": result.Deleted, "deactivated": result.Deactivated, "delete_linked": deleteLinked},
		c.IP(), c.Get("User-Agent"))

	return c.JSON(result)
}
