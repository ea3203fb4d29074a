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

type QRHandler struct {
	qrService    *services.QRService
	auditService *services.AuditService
}

func NewQRHandler(qrService *services.QRService, auditService *services.AuditService) *QRHandler {
	return &QRHandler{qrService: qrService, auditService: auditService}
}

func (h *QRHandler) List(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("formId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid form id",
		})
	}

	codes, err := h.qrService.List(tenant.GetOrgID(c), formID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list QR codes",
		})
	}

	out := make([]fiber.Map, 0, len(codes))
	for i := range codes {
		out = append(out, fiber.Map{
			"qr_code":    codes[i],
			"public_url": h.qrService.PublicURL(&codes[i]),
		})
	}
	return c.JSON(fiber.Map{"qr_codes": out})
}

func (h *QRHandler) Create(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("formId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid form id",
		})
	}

	var req dto.CreateQRRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	qr, err := h.qrService.Create(tenant.GetOrgID(c), formID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFormNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrShortCodeSpace):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create QR code",
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditQRCreate, "qr_code", qr.ID.String(),
		map[string]interface{}{"short_code": qr.ShortCode, "form_id": formID.String()}, c.IP(), c.Get("User-Agent"))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"qr_code":    qr,
		"public_url": h.qrService.PublicURL(qr),
	})
}

func (h *QRHandler) Update(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("formId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid form id",
		})
	}
	qrID, err := uuid.Parse(c.Params("qrId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid QR code id",
		})
	}

	var req dto.UpdateQRRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	qr, err := h.qrService.Update(tenant.GetOrgID(c), formID, qrID, &req)
	if err != nil {
		if errors.Is(err, services.ErrQRNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update QR code",
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditQRUpdate, "qr_code", qr.ID.String(),
		nil, c.IP(), c.Get("User-Agent"))

	return c.JSON(qr)
}

func (h *QRHandler) Delete(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("formId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid form id",
		})
	}
	qrID, err := uuid.Parse(c.Params("qrId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid QR code id",
		})
	}

	if err := h.qrService.Delete(tenant.GetOrgID(c), formID, qrID); err != nil {
		if errors.Is(err, services.ErrQRNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete QR code",
		})
	}

	h.auditService.Record(actorFrom(c), models.AuditQRDelete, "qr_code", qrID.String(),
		nil, c.IP(), c.Get("User-Agent"))

	return c.JSON(fiber.Map{"message": "QR code deleted"})
}

// Image renders the QR code as a PNG for printing. Size is clamped by the
// service; ?size=1024 for poster printing.
func (h *QRHandler) Image(c *fiber.Ctx) error {
	formID, err := uuid.Parse(c.Params("formId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid form id",
		})
	}
	qrID, err := uuid.Parse(c.Params("qrId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid QR code id",
		})
	}

	qr, err := h.qrService.Get(tenant.GetOrgID(c), formID, qrID)
	if err != nil {
		if errors.Is(err, services.ErrQRNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load QR code",
		})
	}

	png, err := h.qrService.PNG(qr, c.QueryInt("size", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to render QR image",
		})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
