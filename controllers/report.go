package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
	"github.com/thetahouse/thetahouse/redis"
)

const reportCacheTTL = 5 * time.Minute

// cachedJSON serves a report from the Redis cache when possible, otherwise
// builds it and caches the rendered payload.
func cachedJSON(c *fiber.Ctx, key string, build func() (interface{}, error)) error {
	if redis.Client != nil {
		if data := redis.GetCachedReport(key); data != nil {
			c.Set("Content-Type", "application/json")
			return c.Send(data)
		}
	}

	payload, err := build()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if redis.Client != nil {
		if data, err := json.Marshal(payload); err == nil {
			if err := redis.CacheReport(key, data, reportCacheTTL); err == nil {
				c.Set("Content-Type", "application/json")
				return c.Send(data)
			}
		}
	}

	return c.JSON(payload)
}

// GetRevenueReport summarizes ledger income and expenses over a date range
func GetRevenueReport(c *fiber.Ctx) error {
	from := c.Query("from", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	to := c.Query("to", time.Now().Format("2006-01-02"))

	key := fmt.Sprintf("revenue:%s:%s", from, to)
	return cachedJSON(c, key, func() (interface{}, error) {
		fromT, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, fmt.Errorf("invalid from date")
		}
		toT, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, fmt.Errorf("invalid to date")
		}

		var income, expense float64
		if err := db.DB.Model(&models.Transaction{}).
			Where("kind = ? AND occurred_at >= ? AND occurred_at < ?", models.TransactionIncome, fromT, toT.AddDate(0, 0, 1)).
			Select("COALESCE(SUM(amount), 0)").Scan(&income).Error; err != nil {
			return nil, err
		}
		if err := db.DB.Model(&models.Transaction{}).
			Where("kind = ? AND occurred_at >= ? AND occurred_at < ?", models.TransactionExpense, fromT, toT.AddDate(0, 0, 1)).
			Select("COALESCE(SUM(amount), 0)").Scan(&expense).Error; err != nil {
			return nil, err
		}

		return fiber.Map{
			"from":    from,
			"to":      to,
			"income":  income,
			"expense": expense,
			"net":     income - expense,
		}, nil
	})
}

// GetOutstandingReport lists orders whose payments do not cover their total
func GetOutstandingReport(c *fiber.Ctx) error {
	return cachedJSON(c, "outstanding", func() (interface{}, error) {
		type OutstandingOrder struct {
			OrderID     uint    `json:"order_id"`
			Number      string  `json:"number"`
			Customer    string  `json:"customer"`
			Total       float64 `json:"total"`
			Paid        float64 `json:"paid"`
			Outstanding float64 `json:"outstanding"`
		}

		var rows []OutstandingOrder
		err := db.DB.Model(&models.Order{}).
			Select(`orders.id AS order_id, orders.number, customers.name AS customer, orders.total,
				COALESCE(SUM(payments.amount), 0) AS paid,
				orders.total - COALESCE(SUM(payments.amount), 0) AS outstanding`).
			Joins("JOIN customers ON customers.id = orders.customer_id").
			Joins("LEFT JOIN payments ON payments.order_id = orders.id AND payments.direction = ? AND payments.deleted_at IS NULL", models.PaymentIn).
			Where("orders.status NOT IN ?", []models.OrderStatus{models.OrderCanceled}).
			Group("orders.id, orders.number, customers.name, orders.total").
			Having("orders.total - COALESCE(SUM(payments.amount), 0) > 0").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}

		return fiber.Map{"orders": rows}, nil
	})
}

// GetAppointmentReport counts appointments by status over a date range
func GetAppointmentReport(c *fiber.Ctx) error {
	from := c.Query("from", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	to := c.Query("to", time.Now().Format("2006-01-02"))

	key := fmt.Sprintf("appointments:%s:%s", from, to)
	return cachedJSON(c, key, func() (interface{}, error) {
		fromT, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, fmt.Errorf("invalid from date")
		}
		toT, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, fmt.Errorf("invalid to date")
		}

		type StatusCount struct {
			Status models.AppointmentStatus `json:"status"`
			Count  int64                    `json:"count"`
		}

		var counts []StatusCount
		err = db.DB.Model(&models.Appointment{}).
			Select("status, COUNT(*) AS count").
			Where("start_time >= ? AND start_time < ?", fromT, toT.AddDate(0, 0, 1)).
			Group("status").
			Scan(&counts).Error
		if err != nil {
			return nil, err
		}

		return fiber.Map{
			"from":   from,
			"to":     to,
			"counts": counts,
		}, nil
	})
}
