package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupPurchaseRoutes configures all purchase order related routes
func SetupPurchaseRoutes(app *fiber.App, svc *rbac.Service) {
	purchase := app.Group("/purchases", middleware.Protected())
	purchase.Get("/", middleware.RequirePermission(svc, "purchase", "read"), controllers.GetAllPurchases)
	purchase.Get("/:id", middleware.RequirePermission(svc, "purchase", "read"), controllers.GetPurchase)
	purchase.Post("/", middleware.RequirePermission(svc, "purchase", "create"), controllers.CreatePurchase)
	purchase.Patch("/:id/status", middleware.RequirePermission(svc, "purchase", "update"), controllers.UpdatePurchaseStatus)
	purchase.Delete("/:id", middleware.RequirePermission(svc, "purchase", "delete"), controllers.DeletePurchase)
}
