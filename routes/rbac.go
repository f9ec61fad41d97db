package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupRBACRoutes configures all role and permission management routes
func SetupRBACRoutes(app *fiber.App, svc *rbac.Service) {
	group := app.Group("/rbac", middleware.Protected())

	// Roles
	group.Post("/roles", middleware.RequirePermission(svc, "role", "create"), controllers.CreateRole(svc))
	group.Get("/roles", middleware.RequirePermission(svc, "role", "read"), controllers.GetRoles(svc))
	group.Patch("/roles/:id", middleware.RequirePermission(svc, "role", "update"), controllers.UpdateRole(svc))
	group.Delete("/roles/:id", middleware.RequirePermission(svc, "role", "delete"), controllers.DeleteRole(svc))

	// Permissions
	group.Post("/permissions", middleware.RequirePermission(svc, "permission", "create"), controllers.CreatePermission(svc))
	group.Get("/permissions", middleware.RequirePermission(svc, "permission", "read"), controllers.GetPermissions(svc))
	group.Get("/permissions/matrix", middleware.RequirePermission(svc, "permission", "read"), controllers.GetPermissionMatrix(svc))
	group.Patch("/permissions/:id", middleware.RequirePermission(svc, "permission", "update"), controllers.UpdatePermission(svc))
	group.Delete("/permissions/:id", middleware.RequirePermission(svc, "permission", "delete"), controllers.DeletePermission(svc))

	// Role-permission assignment (whole-set replace)
	group.Get("/roles/:id/permissions", middleware.RequirePermission(svc, "role", "read"), controllers.GetRolePermissions(svc))
	group.Put("/roles/:id/permissions", middleware.RequirePermission(svc, "role", "update"), controllers.ReplaceRolePermissions(svc))

	// User-role assignment
	group.Post("/users/role", middleware.RequirePermission(svc, "user", "update"), controllers.AssignRoleToUser(svc))

	// UI capability probe; display gating only
	group.Get("/can", controllers.CheckCapability(svc))
}
