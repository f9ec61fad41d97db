package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
	"github.com/thetahouse/thetahouse/utils"
)

// GetAllConsignments returns all consignments
func GetAllConsignments(c *fiber.Ctx) error {
	var consignments []models.Consignment

	query := db.DB.Preload("Partner").Preload("Product")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at DESC").Find(&consignments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get consignments",
		})
	}

	return c.JSON(consignments)
}

// GetConsignment returns a consignment by id
func GetConsignment(c *fiber.Ctx) error {
	id := c.Params("id")

	var consignment models.Consignment
	if err := db.DB.Preload("Partner").Preload("Product").First(&consignment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Consignment not found",
		})
	}

	return c.JSON(consignment)
}

// CreateConsignment places stock with a partner (out) or takes partner stock
// in. Outgoing consignments deduct our stock immediately.
func CreateConsignment(c *fiber.Ctx) error {
	type ConsignmentInput struct {
		PartnerID uint                        `json:"partner_id" validate:"required"`
		ProductID uint                        `json:"product_id" validate:"required"`
		Quantity  int                         `json:"quantity" validate:"required,gt=0"`
		UnitPrice float64                     `json:"unit_price" validate:"gte=0"`
		Direction models.ConsignmentDirection `json:"direction"`
		ExpiresAt time.Time                   `json:"expires_at"`
	}

	input := new(ConsignmentInput)
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

	var partner models.Partner
	if db.DB.First(&partner, input.PartnerID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Partner not found",
		})
	}

	consignment := models.Consignment{
		PartnerID: input.PartnerID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		Direction: input.Direction,
		ExpiresAt: input.ExpiresAt,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&consignment).Error; err != nil {
			return err
		}

		if consignment.Direction == models.ConsignmentOut {
			reference := fmt.Sprintf("consignment:%d", consignment.ID)
			return ApplyMovement(tx, consignment.ProductID, -consignment.Quantity, models.MovementConsignment, reference, "")
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(consignment)
}

// SettleConsignment closes an active consignment: unsold units return to
// stock, sold units become a ledger transaction.
func SettleConsignment(c *fiber.Ctx) error {
	id := c.Params("id")

	type SettleInput struct {
		SoldQty int `json:"sold_qty" validate:"gte=0"`
	}
	input := new(SettleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var consignment models.Consignment
	if err := db.DB.Preload("Partner").First(&consignment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Consignment not found",
		})
	}

	if consignment.Status == models.ConsignmentSettled {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Consignment already settled",
		})
	}
	if input.SoldQty > consignment.Quantity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Sold quantity exceeds consigned quantity",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		consignment.SoldQty = input.SoldQty
		consignment.Status = models.ConsignmentSettled
		consignment.SettledAt = &now
		if err := tx.Save(&consignment).Error; err != nil {
			return err
		}

		// Unsold outgoing stock comes back to us
		unsold := consignment.Quantity - consignment.SoldQty
		if consignment.Direction == models.ConsignmentOut && unsold > 0 {
			reference := fmt.Sprintf("consignment:%d", consignment.ID)
			if err := ApplyMovement(tx, consignment.ProductID, unsold, models.MovementConsignment, reference, "settlement return"); err != nil {
				return err
			}
		}

		amount := consignment.SettlementAmount()
		if amount == 0 {
			return nil
		}

		kind := models.TransactionIncome
		if consignment.Direction == models.ConsignmentIn {
			kind = models.TransactionExpense
		}
		transaction := models.Transaction{
			Kind:        kind,
			Amount:      amount,
			Source:      models.SourceSettlement,
			Description: fmt.Sprintf("Settlement of consignment %d with %s", consignment.ID, consignment.Partner.Name),
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(consignment)
}

// DeleteConsignment removes an active consignment and returns outgoing stock
func DeleteConsignment(c *fiber.Ctx) error {
	id := c.Params("id")

	var consignment models.Consignment
	if err := db.DB.First(&consignment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Consignment not found",
		})
	}

	if consignment.Status == models.ConsignmentSettled {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Settled consignments cannot be deleted",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if consignment.Direction == models.ConsignmentOut {
			reference := fmt.Sprintf("consignment:%d", consignment.ID)
			if err := ApplyMovement(tx, consignment.ProductID, consignment.Quantity, models.MovementConsignment, reference, "consignment canceled"); err != nil {
				return err
			}
		}
		return tx.Delete(&consignment).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
