package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupPartnerRoutes configures all partner related routes
func SetupPartnerRoutes(app *fiber.App, svc *rbac.Service) {
	partner := app.Group("/partners", middleware.Protected())
	partner.Get("/", middleware.RequirePermission(svc, "partner", "read"), controllers.GetAllPartners)
	partner.Get("/:id", middleware.RequirePermission(svc, "partner", "read"), controllers.GetPartner)
	partner.Post("/", middleware.RequirePermission(svc, "partner", "create"), controllers.CreatePartner)
	partner.Patch("/:id", middleware.RequirePermission(svc, "partner", "update"), controllers.UpdatePartner)
	partner.Delete("/:id", middleware.RequirePermission(svc, "partner", "delete"), controllers.DeletePartner)
}
