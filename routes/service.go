package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

func SetupServiceRoutes(app *fiber.App, svc *rbac.Service) {
	service := app.Group("/services")
	service.Get("/", controllers.GetAllServices)
	service.Get("/:id", controllers.GetService)
	service.Post("/", middleware.Protected(), middleware.RequirePermission(svc, "service", "create"), controllers.CreateService)
	service.Put("/:id", middleware.Protected(), middleware.RequirePermission(svc, "service", "update"), controllers.UpdateService)
	service.Delete("/:id", middleware.Protected(), middleware.RequirePermission(svc, "service", "delete"), controllers.DeleteService)
}
