package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
)

// GetAllCustomers returns all customers
func GetAllCustomers(c *fiber.Ctx) error {
	var customers []models.Customer

	if err := db.DB.Find(&customers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get customers",
		})
	}

	return c.JSON(customers)
}

// GetCustomer returns a customer with their orders and appointments
func GetCustomer(c *fiber.Ctx) error {
	id := c.Params("id")

	var customer models.Customer
	if err := db.DB.Preload("Orders").Preload("Appointments").First(&customer, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Customer not found",
		})
	}

	return c.JSON(customer)
}

// CreateCustomer creates a new customer
func CreateCustomer(c *fiber.Ctx) error {
	customer := new(models.Customer)

	if err := c.BodyParser(customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if customer.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Customer name is required",
		})
	}

	if err := db.DB.Create(&customer).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create customer",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(customer)
}

// UpdateCustomer updates a customer
func UpdateCustomer(c *fiber.Ctx) error {
	id := c.Params("id")

	var existing models.Customer
	if db.DB.First(&existing, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Customer not found",
		})
	}

	customer := new(models.Customer)
	if err := c.BodyParser(customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := db.DB.Model(&existing).Updates(customer).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update customer",
		})
	}

	return c.JSON(existing)
}

// DeleteCustomer deletes a customer
func DeleteCustomer(c *fiber.Ctx) error {
	id := c.Params("id")

	var customer models.Customer
	if db.DB.First(&customer, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Customer not found",
		})
	}

	db.DB.Delete(&customer)
	return c.SendStatus(fiber.StatusNoContent)
}
