package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/controllers"
	"github.com/thetahouse/thetahouse/middleware"
	"github.com/thetahouse/thetahouse/rbac"
)

// SetupTransactionRoutes configures ledger routes
func SetupTransactionRoutes(app *fiber.App, svc *rbac.Service) {
	transaction := app.Group("/transactions", middleware.Protected())
	transaction.Get("/", middleware.RequirePermission(svc, "transaction", "read"), controllers.GetAllTransactions)
	transaction.Get("/:id", middleware.RequirePermission(svc, "transaction", "read"), controllers.GetTransaction)
	transaction.Post("/", middleware.RequirePermission(svc, "transaction", "create"), controllers.CreateTransaction)
}
