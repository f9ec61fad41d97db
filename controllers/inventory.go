package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
	"github.com/thetahouse/thetahouse/utils"
)

// ApplyMovement records a stock movement and updates the product's quantity
// in the same transaction. Stock is not allowed to go negative.
func ApplyMovement(tx *gorm.DB, productID uint, delta int, reason models.MovementReason, reference, note string) error {
	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		return fmt.Errorf("product %d not found", productID)
	}

	if product.StockQty+delta < 0 {
		return fmt.Errorf("insufficient stock for product %s: have %d, need %d", product.SKU, product.StockQty, -delta)
	}

	movement := models.StockMovement{
		ProductID: productID,
		Delta:     delta,
		Reason:    reason,
		Reference: reference,
		Note:      note,
	}
	if err := tx.Create(&movement).Error; err != nil {
		return err
	}

	return tx.Model(&product).Update("stock_qty", product.StockQty+delta).Error
}

// GetAllMovements returns stock movements, optionally for one product
func GetAllMovements(c *fiber.Ctx) error {
	var movements []models.StockMovement

	query := db.DB.Preload("Product").Order("created_at DESC")
	if productID := c.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}

	if err := query.Find(&movements).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get stock movements",
		})
	}

	return c.JSON(movements)
}

// CreateAdjustment records a manual stock adjustment
func CreateAdjustment(c *fiber.Ctx) error {
	type AdjustmentInput struct {
		ProductID uint   `json:"product_id" validate:"required"`
		Delta     int    `json:"delta" validate:"required"`
		Note      string `json:"note"`
	}

	input := new(AdjustmentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return ApplyMovement(tx, input.ProductID, input.Delta, models.MovementAdjustment, "", input.Note)
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Stock adjusted successfully",
	})
}
