package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
)

// GetAllServices returns all services
func GetAllServices(c *fiber.Ctx) error {
	var services []models.Service

	query := db.DB
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}

	if err := query.Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(services)
}

func GetService(c *fiber.Ctx) error {
	id := c.Params("id")
	var service models.Service
	if err := db.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	return c.JSON(service)
}

// CreateService creates a new service
func CreateService(c *fiber.Ctx) error {
	service := new(models.Service)
	if err := c.BodyParser(service); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if service.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Service name is required",
		})
	}

	service.Active = true
	if err := db.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create service",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

// UpdateService updates a service
func UpdateService(c *fiber.Ctx) error {
	id := c.Params("id")
	service := new(models.Service)
	if err := c.BodyParser(service); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	var existingService models.Service
	if db.DB.First(&existingService, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	service.ID = existingService.ID
	db.DB.Save(&service)
	return c.JSON(service)
}

// DeleteService deletes a service
func DeleteService(c *fiber.Ctx) error {
	id := c.Params("id")
	var service models.Service
	if db.DB.First(&service, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	db.DB.Delete(&service)
	return c.SendStatus(fiber.StatusNoContent)
}
