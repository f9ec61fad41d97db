package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupProductRoutes configures all product related routes
func SetupProductRoutes(app *fiber.App, svc *rbac.Service) {
	product := app.Group("/products")
	product.Get("/", controllers.GetAllProducts)
	product.Get("/:id", controllers.GetProduct)
	product.Post("/", middleware.Protected(), middleware.RequirePermission(svc, "product", "create"), controllers.CreateProduct)
	product.Patch("/:id", middleware.Protected(), middleware.RequirePermission(svc, "product", "update"), controllers.UpdateProduct)
	product.Delete("/:id", middleware.Protected(), middleware.RequirePermission(svc, "product", "delete"), controllers.DeleteProduct)
	product.Post("/:id/image", middleware.Protected(), middleware.RequirePermission(svc, "product", "update"), controllers.UploadProductImage)
}
