package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupInventoryRoutes configures stock movement routes
func SetupInventoryRoutes(app *fiber.App, svc *rbac.Service) {
	inventory := app.Group("/inventory", middleware.Protected())
	inventory.Get("/movements", middleware.RequirePermission(svc, "inventory", "read"), controllers.GetAllMovements)
	inventory.Post("/adjustments", middleware.RequirePermission(svc, "inventory", "update"), controllers.CreateAdjustment)
}
