package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
)

// GetAllPartners returns all partners, optionally filtered by kind
func GetAllPartners(c *fiber.Ctx) error {
	var partners []models.Partner

	query := db.DB
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ? OR kind = ?", kind, models.PartnerBoth)
	}

	if err := query.Find(&partners).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get partners",
		})
	}

	return c.JSON(partners)
}

// GetPartner returns a partner with their purchases and consignments
func GetPartner(c *fiber.Ctx) error {
	id := c.Params("id")

	var partner models.Partner
	if err := db.DB.Preload("Purchases").Preload("Consignments").First(&partner, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Partner not found",
		})
	}

	return c.JSON(partner)
}

// CreatePartner creates a new partner
func CreatePartner(c *fiber.Ctx) error {
	partner := new(models.Partner)

	if err := c.BodyParser(partner); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if partner.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Partner name is required",
		})
	}

	if err := db.DB.Create(&partner).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create partner",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(partner)
}

// UpdatePartner updates a partner
func UpdatePartner(c *fiber.Ctx) error {
	id := c.Params("id")

	var existing models.Partner
	if db.DB.First(&existing, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Partner not found",
		})
	}

	partner := new(models.Partner)
	if err := c.BodyParser(partner); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := db.DB.Model(&existing).Updates(partner).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update partner",
		})
	}

	return c.JSON(existing)
}

// DeletePartner deletes a partner
func DeletePartner(c *fiber.Ctx) error {
	id := c.Params("id")

	var partner models.Partner
	if db.DB.First(&partner, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Partner not found",
		})
	}

	db.DB.Delete(&partner)
	return c.SendStatus(fiber.StatusNoContent)
}
