package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/rbac"
)

// RequirePermission gates the wrapped handler behind a single declared
// (resource, action) pair. On deny the handler is never invoked.
//
// Server-enforced routes must declare non-empty resource and action; the
// evaluator's blank-pair bypass exists only for UI capability checks.
func RequirePermission(svc *rbac.Service, resource, action string) fiber.Handler {
	if strings.TrimSpace(resource) == "" || strings.TrimSpace(action) == "" {
		panic("middleware: RequirePermission needs a non-empty resource and action")
	}

	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		allowed, err := svc.Can(userID, resource, action)
		if err != nil {
			if errors.Is(err, rbac.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "User not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to check permission",
			})
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to perform this action",
			})
		}

		return c.Next()
	}
}

// RequireRole checks the user's role by name. Unrestricted roles pass any
// role check.
func RequireRole(svc *rbac.Service, roleName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		role, err := svc.RoleOf(userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		if role == nil || (!strings.EqualFold(role.Name, roleName) && !role.Unrestricted()) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have the required role to perform this action",
			})
		}

		return c.Next()
	}
}
