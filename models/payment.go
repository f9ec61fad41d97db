package models

import (
	"fmt"

	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

type PaymentDirection string

const (
	PaymentIn  PaymentDirection = "in"  // money received
	PaymentOut PaymentDirection = "out" // money paid out
)

type Payment struct {
	gorm.Model
	Amount     float64          `json:"amount"`
	Method     PaymentMethod    `json:"method"`
	Direction  PaymentDirection `json:"direction"`
	OrderID    *uint            `json:"order_id"`
	Order      *Order           `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	PurchaseID *uint            `json:"purchase_id"`
	Purchase   *Purchase        `json:"purchase,omitempty" gorm:"foreignKey:PurchaseID"`
	// Explicit payer, used when the payment is not tied to an order or purchase.
	PayerName string `json:"payer_name"`
	Notes     string `json:"notes"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.Direction == "" {
		if p.PurchaseID != nil {
			p.Direction = PaymentOut
		} else {
			p.Direction = PaymentIn
		}
	}
	return nil
}

// ResolvePayer returns who the money moved to or from: the order's customer,
// the purchase's partner, or the explicit payer name as a fallback.
func (p *Payment) ResolvePayer(tx *gorm.DB) (string, error) {
	if p.OrderID != nil {
		var order Order
		if err := tx.Preload("Customer").First(&order, *p.OrderID).Error; err != nil {
			return "", fmt.Errorf("failed to resolve order payer: %v", err)
		}
		return order.Customer.Name, nil
	}
	if p.PurchaseID != nil {
		var purchase Purchase
		if err := tx.Preload("Partner").First(&purchase, *p.PurchaseID).Error; err != nil {
			return "", fmt.Errorf("failed to resolve purchase payer: %v", err)
		}
		return purchase.Partner.Name, nil
	}
	return p.PayerName, nil
}
