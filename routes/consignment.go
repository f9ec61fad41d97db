package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupConsignmentRoutes configures all consignment related routes
func SetupConsignmentRoutes(app *fiber.App, svc *rbac.Service) {
	consignment := app.Group("/consignments", middleware.Protected())
	consignment.Get("/", middleware.RequirePermission(svc, "consignment", "read"), controllers.GetAllConsignments)
	consignment.Get("/:id", middleware.RequirePermission(svc, "consignment", "read"), controllers.GetConsignment)
	consignment.Post("/", middleware.RequirePermission(svc, "consignment", "create"), controllers.CreateConsignment)
	consignment.Post("/:id/settle", middleware.RequirePermission(svc, "consignment", "update"), controllers.SettleConsignment)
	consignment.Delete("/:id", middleware.RequirePermission(svc, "consignment", "delete"), controllers.DeleteConsignment)
}
