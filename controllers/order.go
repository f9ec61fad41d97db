package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
	"github.com/thetahouse/thetahouse/utils"
)

// GetAllOrders returns all orders
func GetAllOrders(c *fiber.Ctx) error {
	var orders []models.Order

	query := db.DB.Preload("Customer").Preload("Items")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch orders",
			Error:   err.Error(),
		})
	}
	return c.JSON(orders)
}

// GetOrder returns an order with its items and payments
func GetOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	var order models.Order
	if err := db.DB.Preload("Customer").Preload("Items.Product").Preload("Items.Service").First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Order not found",
			Error:   err.Error(),
		})
	}

	// Derive the paid total from the order's incoming payments
	var paid float64
	db.DB.Model(&models.Payment{}).
		Where("order_id = ? AND direction = ?", order.ID, models.PaymentIn).
		Select("COALESCE(SUM(amount), 0)").Scan(&paid)
	order.PaidTotal = paid

	return c.JSON(order)
}

// CreateOrder creates an order with its line items and computes the total
func CreateOrder(c *fiber.Ctx) error {
	type OrderItemInput struct {
		ProductID *uint   `json:"product_id"`
		ServiceID *uint   `json:"service_id"`
		Quantity  int     `json:"quantity" validate:"required,gt=0"`
		UnitPrice float64 `json:"unit_price" validate:"gte=0"`
		Discount  float64 `json:"discount" validate:"gte=0,lte=100"`
	}
	type OrderInput struct {
		CustomerID uint             `json:"customer_id" validate:"required"`
		Items      []OrderItemInput `json:"items" validate:"required,min=1,dive"`
		Notes      string           `json:"notes"`
	}

	input := new(OrderInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid order payload",
			Error:   err.Error(),
		})
	}

	var customer models.Customer
	if db.DB.First(&customer, input.CustomerID).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Customer not found",
			Error:   fmt.Sprintf("customer %d does not exist", input.CustomerID),
		})
	}

	order := models.Order{
		Number:     utils.GenerateNumber("ORD"),
		CustomerID: input.CustomerID,
		Notes:      input.Notes,
	}
	for _, item := range input.Items {
		if item.ProductID == nil && item.ServiceID == nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid order item",
				Error:   "each item needs a product_id or a service_id",
			})
		}
		unitPrice := item.UnitPrice
		if unitPrice == 0 {
			// Fall back to the catalog price
			if item.ProductID != nil {
				var product models.Product
				if db.DB.First(&product, *item.ProductID).RowsAffected == 0 {
					return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
						Message: "Product not found",
						Error:   fmt.Sprintf("product %d does not exist", *item.ProductID),
					})
				}
				unitPrice = product.Price
			} else {
				var service models.Service
				if db.DB.First(&service, *item.ServiceID).RowsAffected == 0 {
					return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
						Message: "Service not found",
						Error:   fmt.Sprintf("service %d does not exist", *item.ServiceID),
					})
				}
				unitPrice = service.Price
			}
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Discount:  item.Discount,
		})
	}
	order.ComputeTotal()

	if err := db.DB.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create order",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// UpdateOrderStatus moves an order through its state machine. Fulfilling an
// order deducts product stock and emails the customer a receipt.
func UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	type StatusInput struct {
		Status models.OrderStatus `json:"status" validate:"required"`
	}
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var order models.Order
	if err := db.DB.Preload("Customer").Preload("Items").First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Order not found",
			Error:   err.Error(),
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := order.UpdateStatus(tx, input.Status); err != nil {
			return err
		}

		if input.Status == models.OrderFulfilled {
			for _, item := range order.Items {
				if item.ProductID == nil {
					continue // service lines carry no stock
				}
				reference := fmt.Sprintf("order:%d", order.ID)
				if err := ApplyMovement(tx, *item.ProductID, -item.Quantity, models.MovementSale, reference, ""); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to update order status",
			Error:   err.Error(),
		})
	}

	if input.Status == models.OrderFulfilled && order.Customer.Email != "" {
		if err := sendOrderReceipt(&order); err != nil {
			log.Printf("Failed to send receipt for order %d: %v", order.ID, err)
		}
	}

	return c.JSON(order)
}

// DeleteOrder cancels and removes a pending order
func DeleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Order not found",
			Error:   err.Error(),
		})
	}

	if order.Status != models.OrderPending {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Only pending orders can be deleted",
			Error:   fmt.Sprintf("order is %s", order.Status),
		})
	}

	if err := db.DB.Select("Items").Delete(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete order",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// sendOrderReceipt emails the customer a summary of the fulfilled order
func sendOrderReceipt(order *models.Order) error {
	subject := fmt.Sprintf("Receipt for order %s", order.Number)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for your order. Here is your receipt.</p>
		<p><strong>Order:</strong> %s</p>
		<p><strong>Total:</strong> %.2f</p>
		<p>Best regards,</p>
		<p>ThetaHouse</p>
	`, order.Customer.Name, order.Number, order.Total)

	return utils.SendEmail(order.Customer.Email, subject, body)
}
