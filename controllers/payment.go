package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
	"github.com/thetahouse/thetahouse/utils"
)

// GetAllPayments returns all payments
func GetAllPayments(c *fiber.Ctx) error {
	var payments []models.Payment

	query := db.DB.Preload("Order").Preload("Purchase")
	if direction := c.Query("direction"); direction != "" {
		query = query.Where("direction = ?", direction)
	}

	if err := query.Order("created_at DESC").Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get payments",
		})
	}

	return c.JSON(payments)
}

// GetPayment returns a payment with its resolved payer
func GetPayment(c *fiber.Ctx) error {
	id := c.Params("id")

	var payment models.Payment
	if err := db.DB.Preload("Order").Preload("Purchase").First(&payment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Payment not found",
		})
	}

	payer, err := payment.ResolvePayer(db.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"payment": payment,
		"payer":   payer,
	})
}

// CreatePayment records a payment and its matching ledger transaction
func CreatePayment(c *fiber.Ctx) error {
	type PaymentInput struct {
		Amount     float64                 `json:"amount" validate:"required,gt=0"`
		Method     models.PaymentMethod    `json:"method" validate:"required,oneof=cash card transfer"`
		Direction  models.PaymentDirection `json:"direction"`
		OrderID    *uint                   `json:"order_id"`
		PurchaseID *uint                   `json:"purchase_id"`
		PayerName  string                  `json:"payer_name"`
		Notes      string                  `json:"notes"`
	}

	input := new(PaymentInput)
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

	if input.OrderID != nil {
		var order models.Order
		if db.DB.First(&order, *input.OrderID).RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
	}
	if input.PurchaseID != nil {
		var purchase models.Purchase
		if db.DB.First(&purchase, *input.PurchaseID).RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Purchase not found",
			})
		}
	}

	payment := models.Payment{
		Amount:     input.Amount,
		Method:     input.Method,
		Direction:  input.Direction,
		OrderID:    input.OrderID,
		PurchaseID: input.PurchaseID,
		PayerName:  input.PayerName,
		Notes:      input.Notes,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		payer, err := payment.ResolvePayer(tx)
		if err != nil {
			return err
		}

		kind := models.TransactionIncome
		if payment.Direction == models.PaymentOut {
			kind = models.TransactionExpense
		}
		transaction := models.Transaction{
			Kind:        kind,
			Amount:      payment.Amount,
			Source:      models.SourcePayment,
			Description: fmt.Sprintf("Payment %d (%s) from %s", payment.ID, payment.Method, payer),
			PaymentID:   &payment.ID,
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record payment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// DeletePayment removes a payment and its ledger transaction
func DeletePayment(c *fiber.Ctx) error {
	id := c.Params("id")

	var payment models.Payment
	if db.DB.First(&payment, id).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Payment not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_id = ?", payment.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&payment).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete payment",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
