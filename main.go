package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/thetahouse/thetahouse/cron"
	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/rbac"
	"github.com/thetahouse/thetahouse/redis"
	"github.com/thetahouse/thetahouse/routes"
)

func main() {
	app := fiber.New()
	db.Migrate()
	db.Seed()
	redis.InitRedis()

	svc := rbac.NewService(db.DB)

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ThetaHouse API")
	})

	routes.SetupAuthRoutes(app, svc)
	routes.SetupRBACRoutes(app, svc)
	routes.SetupCustomerRoutes(app, svc)
	routes.SetupPartnerRoutes(app, svc)
	routes.SetupProductRoutes(app, svc)
	routes.SetupServiceRoutes(app, svc)
	routes.SetupInventoryRoutes(app, svc)
	routes.SetupOrderRoutes(app, svc)
	routes.SetupPurchaseRoutes(app, svc)
	routes.SetupConsignmentRoutes(app, svc)
	routes.SetupAppointmentRoutes(app, svc)
	routes.SetupWorkingHourRoutes(app, svc)
	routes.SetupPaymentRoutes(app, svc)
	routes.SetupTransactionRoutes(app, svc)
	routes.SetupReportRoutes(app, svc)

	cron.StartCronJobs()

	log.Fatal(app.Listen(":8000"))
}
