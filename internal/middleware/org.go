package middleware

import (
	"errors"

	"github.com/clinicpass/clinicpass-backend/internal/dto"
	"github.com/clinicpass/clinicpass-backend/internal/models"
	"github.com/clinicpass/clinicpass-backend/internal/services"
	"github.com/clinicpass/clinicpass-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// OrgMember resolves the caller's organization membership and stores the
// org id and role in context. Provider routes require an approved org;
// members of pending or rejected orgs get a 403 with the current status
// so the frontend can show the right waiting screen.
func OrgMember(providerService *services.ProviderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := tenant.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		member, err := providerService.Membership(userID)
		if err != nil {
			if errors.Is(err, services.ErrNotOrgMember) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error: true, Message: "No organization membership",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to resolve organization",
			})
		}

		if member.Organization.Status != models.OrgStatusApproved {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Organization is not approved",
				Code:    "org_" + member.Organization.Status,
			})
		}

		c.Locals("org_id", member.OrganizationID)
		c.Locals("org_role", member.Role)
		return c.Next()
	}
}
