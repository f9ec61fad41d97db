package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupPaymentRoutes configures all payment related routes
func SetupPaymentRoutes(app *fiber.App, svc *rbac.Service) {
	payment := app.Group("/payments", middleware.Protected())
	payment.Get("/", middleware.RequirePermission(svc, "payment", "read"), controllers.GetAllPayments)
	payment.Get("/:id", middleware.RequirePermission(svc, "payment", "read"), controllers.GetPayment)
	payment.Post("/", middleware.RequirePermission(svc, "payment", "create"), controllers.CreatePayment)
	payment.Delete("/:id", middleware.RequirePermission(svc, "payment", "delete"), controllers.DeletePayment)
}
