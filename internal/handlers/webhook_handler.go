package handlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"strconv"

	"github.com/clinicpass/clinicpass-backend/internal/config"
	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	submissionService *services.SubmissionService
	cfg               *config.Config
}

func NewWebhookHandler(submissionService *services.SubmissionService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{submissionService: submissionService, cfg: cfg}
}

type docusealWebhook struct {
	EventType string `json:"event_type"`
	Data      struct {
		SubmissionID interface{} `json:"submission_id"`
		ID           interface{} `json:"id"`
		Status       string      `json:"status"`
	} `json:"data"`
}

// HandleDocuseal receives signature completion events. Auth is a shared
// secret header compared in constant time.
func (h *WebhookHandler) HandleDocuseal(c *fiber.Ctx) error {
	if h.cfg.DocusealWebhookSecret == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Webhooks not configured",
		})
	}

	secret := c.Get("X-Docuseal-Signature")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.cfg.DocusealWebhookSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var webhook docusealWebhook
	if err := c.BodyParser(&webhook); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook payload",
		})
	}

	if webhook.EventType != "form.completed" && webhook.EventType != "submission.completed" {
		return c.JSON(fiber.Map{"received": true})
	}

	submissionID := stringify(webhook.Data.SubmissionID)
	if submissionID == "" {
		submissionID = stringify(webhook.Data.ID)
	}
	if submissionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing submission id",
		})
	}

	if err := h.submissionService.MarkSigned(submissionID); err != nil {
		if errors.Is(err, services.ErrSubmissionNotFound) {
			// Unknown id is not retryable; acknowledge so DocuSeal stops
			// resending.
			slog.Warn("webhook for unknown submission", "docuseal_id", submissionID)
			return c.JSON(fiber.Map{"received": true})
		}
		slog.Error("webhook processing failed", "event_type", webhook.EventType, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to process webhook event",
		})
	}

	slog.Info("submission marked signed", "docuseal_id", submissionID)
	return c.JSON(fiber.Map{"received": true})
}

// stringify tolerates DocuSeal sending ids as either numbers or strings.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
