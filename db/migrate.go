package db

import (
	"fmt"
	"log"

	"github.com/thetahouse/thetahouse/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Customer{},
		&models.Partner{},
		&models.Product{},
		&models.Service{},
		&models.StockMovement{},
		&models.Order{},
		&models.OrderItem{},
		&models.Purchase{},
		&models.PurchaseItem{},
		&models.Consignment{},
		&models.Recurrence{},
		&models.Appointment{},
		&models.WorkingHours{},
		&models.Payment{},
		&models.Transaction{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
