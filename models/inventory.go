package models

import (
	"gorm.io/gorm"
)

type MovementReason string

const (
	MovementPurchase    MovementReason = "purchase"
	MovementSale        MovementReason = "sale"
	MovementAdjustment  MovementReason = "adjustment"
	MovementConsignment MovementReason = "consignment"
)

// StockMovement records a single change to a product's stock level. Product
// quantities are never written directly; every change goes through a movement
// so the history stays auditable.
type StockMovement struct {
	gorm.Model
	ProductID uint           `json:"product_id"`
	Product   Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Delta     int            `json:"delta"` // positive for stock in, negative for stock out
	Reason    MovementReason `json:"reason"`
	Reference string         `json:"reference"` // e.g., "order:42", "purchase:7"
	Note      string         `json:"note"`
}
