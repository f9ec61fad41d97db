package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
	"github.com/thetahouse/thetahouse/utils"
)

// GetAllPurchases returns all purchases
func GetAllPurchases(c *fiber.Ctx) error {
	var purchases []models.Purchase

	query := db.DB.Preload("Partner").Preload("Items")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at DESC").Find(&purchases).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch purchases",
			Error:   err.Error(),
		})
	}
	return c.JSON(purchases)
}

// GetPurchase returns a purchase with its items
func GetPurchase(c *fiber.Ctx) error {
	id := c.Params("id")
	var purchase models.Purchase
	if err := db.DB.Preload("Partner").Preload("Items.Product").First(&purchase, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Purchase not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(purchase)
}

// CreatePurchase creates a purchase order against a partner
func CreatePurchase(c *fiber.Ctx) error {
	type PurchaseItemInput struct {
		ProductID uint    `json:"product_id" validate:"required"`
		Quantity  int     `json:"quantity" validate:"required,gt=0"`
		UnitCost  float64 `json:"unit_cost" validate:"gte=0"`
	}
	type PurchaseInput struct {
		PartnerID uint                `json:"partner_id" validate:"required"`
		Items     []PurchaseItemInput `json:"items" validate:"required,min=1,dive"`
		Notes     string              `json:"notes"`
	}

	input := new(PurchaseInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid purchase payload",
			Error:   err.Error(),
		})
	}

	var partner models.Partner
	if db.DB.First(&partner, input.PartnerID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Partner not found",
			Error:   fmt.Sprintf("partner %d does not exist", input.PartnerID),
		})
	}

	purchase := models.Purchase{
		Number:    utils.GenerateNumber("PUR"),
		PartnerID: input.PartnerID,
		Notes:     input.Notes,
	}
	for _, item := range input.Items {
		var product models.Product
		if db.DB.First(&product, item.ProductID).RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Product not found",
				Error:   fmt.Sprintf("product %d does not exist", item.ProductID),
			})
		}
		unitCost := item.UnitCost
		if unitCost == 0 {
			unitCost = product.Cost
		}
		purchase.Items = append(purchase.Items, models.PurchaseItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  unitCost,
		})
	}
	purchase.ComputeTotal()

	if err := db.DB.Create(&purchase).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create purchase",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// UpdatePurchaseStatus moves a purchase through its state machine. Receiving
// a purchase adds the items to stock.
func UpdatePurchaseStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	type StatusInput struct {
		Status models.PurchaseStatus `json:"status" validate:"required"`
	}
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var purchase models.Purchase
	if err := db.DB.Preload("Items").First(&purchase, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Purchase not found",
			Error:   err.Error(),
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := purchase.UpdateStatus(tx, input.Status); err != nil {
			return err
		}

		if input.Status == models.PurchaseReceived {
			for _, item := range purchase.Items {
				reference := fmt.Sprintf("purchase:%d", purchase.ID)
				if err := ApplyMovement(tx, item.ProductID, item.Quantity, models.MovementPurchase, reference, ""); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to update purchase status",
			Error:   err.Error(),
		})
	}

	return c.JSON(purchase)
}

// DeletePurchase removes a pending purchase
func DeletePurchase(c *fiber.Ctx) error {
	id := c.Params("id")

	var purchase models.Purchase
	if err := db.DB.First(&purchase, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Purchase not found",
			Error:   err.Error(),
		})
	}

	if purchase.Status != models.PurchasePending {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Only pending purchases can be deleted",
			Error:   fmt.Sprintf("purchase is %s", purchase.Status),
		})
	}

	if err := db.DB.Select("Items").Delete(&purchase).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete purchase",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
