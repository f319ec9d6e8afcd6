package middleware

import (
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

const adminLocalsKey = "admin"

// AdminVerifier resolves a request to an active admin, or nil.
type AdminVerifier interface {
	VerifyAdminFromRequest(c *fiber.Ctx) *services.AdminIdentity
}

// AdminRequired rejects requests that do not carry an active admin's token.
// The resolved identity is available to later handlers through Admin.
func AdminRequired(verifier AdminVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := verifier.VerifyAdminFromRequest(c)
		if identity == nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "Admin access required",
			})
		}
		c.Locals(adminLocalsKey, identity)
		return c.Next()
	}
}

func Admin(c *fiber.Ctx) *services.AdminIdentity {
	identity, _ := c.Locals(adminLocalsKey).(*services.AdminIdentity)
	return identity
}
