package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupReportRoutes configures financial reporting routes
func SetupReportRoutes(app *fiber.App, svc *rbac.Service) {
	report := app.Group("/reports", middleware.Protected())
	report.Get("/revenue", middleware.RequirePermission(svc, "report", "read"), controllers.GetRevenueReport)
	report.Get("/outstanding", middleware.RequirePermission(svc, "report", "read"), controllers.GetOutstandingReport)
	report.Get("/appointments", middleware.RequirePermission(svc, "report", "read"), controllers.GetAppointmentReport)
}
