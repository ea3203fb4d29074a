package handlers

import (
	"github.com/clinicpass/clinicpass-backend/internal/services"
	"github.com/clinicpass/clinicpass-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// actorFrom builds an audit actor from the JWT in context. Anonymous
// callers produce an empty actor.
func actorFrom(c *fiber.Ctx) services.Actor {
	actor := services.Actor{Email: tenant.GetUserEmail(c)}
	if id, err := tenant.GetUserID(c); err == nil {
		actor.ID = &id
	}
	return actor
}
