package middleware

import (
	"context"

	"github.com/anhnq-lab/cic-erp-contract-sub002/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// PermissionResolver is satisfied by permission.PermissionService. Declared
// here to keep middleware free of feature imports.
type PermissionResolver interface {
	Resolve(ctx context.Context, userID string, resource string, action string) (bool, error)
}

// RequirePermission checks if the user may perform an action on a resource
// before the handler runs.
func RequirePermission(resolver PermissionResolver, resource string, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		allowed, err := resolver.Resolve(c.UserContext(), claims.UserID, resource, action)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Insufficient permissions",
			})
		}

		return c.Next()
	}
}
