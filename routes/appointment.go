package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App, svc *rbac.Service) {
	appointment := app.Group("/appointments", middleware.Protected())
	appointment.Get("/", middleware.RequirePermission(svc, "appointment", "read"), controllers.GetAllAppointments)
	appointment.Get("/:id", middleware.RequirePermission(svc, "appointment", "read"), controllers.GetAppointment)
	appointment.Post("/", middleware.RequirePermission(svc, "appointment", "create"), controllers.CreateAppointment)
	appointment.Patch("/:id", middleware.RequirePermission(svc, "appointment", "update"), controllers.UpdateAppointment)
	appointment.Patch("/:id/status", middleware.RequirePermission(svc, "appointment", "update"), controllers.UpdateAppointmentStatus)
	appointment.Delete("/:id", middleware.RequirePermission(svc, "appointment", "delete"), controllers.DeleteAppointment)
}
