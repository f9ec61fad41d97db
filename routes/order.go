package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupOrderRoutes configures all sales order related routes
func SetupOrderRoutes(app *fiber.App, svc *rbac.Service) {
	order := app.Group("/orders", middleware.Protected())
	order.Get("/", middleware.RequirePermission(svc, "order", "read"), controllers.GetAllOrders)
	order.Get("/:id", middleware.RequirePermission(svc, "order", "read"), controllers.GetOrder)
	order.Post("/", middleware.RequirePermission(svc, "order", "create"), controllers.CreateOrder)
	order.Patch("/:id/status", middleware.RequirePermission(svc, "order", "update"), controllers.UpdateOrderStatus)
	order.Delete("/:id", middleware.RequirePermission(svc, "order", "delete"), controllers.DeleteOrder)
}
