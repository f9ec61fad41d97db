package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
	"github.com/thetahouse/thetahouse/utils"
)

// GetAllTransactions returns ledger entries, optionally filtered by kind and
// date range (?from=2026-01-01&to=2026-02-01)
func GetAllTransactions(c *fiber.Ctx) error {
	var transactions []models.Transaction

	query := db.DB.Preload("Payment")
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("occurred_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("occurred_at < ?", t)
		}
	}

	if err := query.Order("occurred_at DESC").Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get transactions",
		})
	}

	return c.JSON(transactions)
}

// GetTransaction returns a ledger entry by id
func GetTransaction(c *fiber.Ctx) error {
	id := c.Params("id")

	var transaction models.Transaction
	if err := db.DB.Preload("Payment").First(&transaction, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Transaction not found",
		})
	}

	return c.JSON(transaction)
}

// CreateTransaction records a manual ledger entry
func CreateTransaction(c *fiber.Ctx) error {
	type TransactionInput struct {
		Kind        models.TransactionKind `json:"kind" validate:"required,oneof=income expense"`
		Amount      float64                `json:"amount" validate:"required,gt=0"`
		Description string                 `json:"description"`
		OccurredAt  time.Time              `json:"occurred_at"`
	}

	input := new(TransactionInput)
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

	transaction := models.Transaction{
		Kind:        input.Kind,
		Amount:      input.Amount,
		Source:      models.SourceManual,
		Description: input.Description,
		OccurredAt:  input.OccurredAt,
	}

	if err := db.DB.Create(&transaction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create transaction",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(transaction)
}
