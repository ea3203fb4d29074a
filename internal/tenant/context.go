package tenant

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// GetUserEmail extracts the email claim, empty when unauthenticated.
func GetUserEmail(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}

// GetOrgID returns the organization resolved by the org middleware.
func GetOrgID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals("org_id").(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetOrgRole returns the caller's membership role within the resolved
// organization (owner or staff).
func GetOrgRole(c *fiber.Ctx) string {
	if role, ok := c.Locals("org_role").(string); ok {
		return role
	}
	return ""
}
