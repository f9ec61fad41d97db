package models

import (
	"fmt"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderFulfilled OrderStatus = "fulfilled"
	OrderCanceled  OrderStatus = "canceled"
)

type OrderItem struct {
	gorm.Model
	OrderID   uint     `json:"order_id"`
	ProductID *uint    `json:"product_id"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	ServiceID *uint    `json:"service_id"`
	Service   *Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
	Discount  float64  `json:"discount"` // Discount percentage on this line
}

// LineTotal is the item's price after quantity and line discount.
func (i *OrderItem) LineTotal() float64 {
	gross := i.UnitPrice * float64(i.Quantity)
	return gross - (gross * i.Discount / 100)
}

type Order struct {
	gorm.Model
	Number     string      `json:"number" gorm:"unique"`
	CustomerID uint        `json:"customer_id"`
	Customer   Customer    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Status     OrderStatus `json:"status"`
	Items      []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Total      float64     `json:"total"`
	PaidTotal  float64     `json:"paid_total" gorm:"-"`
	Notes      string      `json:"notes"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.Status == "" {
		o.Status = OrderPending
	}
	return nil
}

// ComputeTotal recalculates the order total from its line items.
func (o *Order) ComputeTotal() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.LineTotal()
	}
	o.Total = total
	return total
}

// UpdateStatus enforces the order state machine and persists the change.
func (o *Order) UpdateStatus(tx *gorm.DB, newStatus OrderStatus) error {
	switch o.Status {
	case OrderPending:
		if newStatus != OrderConfirmed && newStatus != OrderCanceled {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case OrderConfirmed:
		if newStatus != OrderFulfilled && newStatus != OrderCanceled {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case OrderFulfilled, OrderCanceled:
		return fmt.Errorf("no transitions allowed from %s", o.Status)
	}

	o.Status = newStatus
	return tx.Save(o).Error
}
