package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App, svc *rbac.Service) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetUserProfile)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
	auth.Get("/user/:id", middleware.Protected(), middleware.RequirePermission(svc, "user", "read"), controllers.GetUserByID)
}
