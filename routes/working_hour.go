package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupWorkingHourRoutes configures all working hour related routes
func SetupWorkingHourRoutes(app *fiber.App, svc *rbac.Service) {
	workingHour := app.Group("/working-hours")
	workingHour.Get("/", controllers.GetAllWorkingHours)
	workingHour.Get("/:id", controllers.GetWorkingHour)
	workingHour.Post("/", middleware.Protected(), middleware.RequirePermission(svc, "user", "update"), controllers.CreateWorkingHour)
	workingHour.Patch("/:id", middleware.Protected(), middleware.RequirePermission(svc, "user", "update"), controllers.UpdateWorkingHour)
	workingHour.Delete("/:id", middleware.Protected(), middleware.RequirePermission(svc, "user", "update"), controllers.DeleteWorkingHour)
}
