package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupCustomerRoutes configures all customer related routes
func SetupCustomerRoutes(app *fiber.App, svc *rbac.Service) {
	customer := app.Group("/customers", middleware.Protected())
	customer.Get("/", middleware.RequirePermission(svc, "customer", "read"), controllers.GetAllCustomers)
	customer.Get("/:id", middleware.RequirePermission(svc, "customer", "read"), controllers.GetCustomer)
	customer.Post("/", middleware.RequirePermission(svc, "customer", "create"), controllers.CreateCustomer)
	customer.Patch("/:id", middleware.RequirePermission(svc, "customer", "update"), controllers.UpdateCustomer)
	customer.Delete("/:id", middleware.RequirePermission(svc, "customer", "delete"), controllers.DeleteCustomer)
}
