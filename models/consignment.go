package models

import (
	"time"

	"gorm.io/gorm"
)

type ConsignmentStatus string

const (
	ConsignmentActive  ConsignmentStatus = "active"
	ConsignmentSettled ConsignmentStatus = "settled"
	ConsignmentExpired ConsignmentStatus = "expired"
)

type ConsignmentDirection string

const (
	// ConsignmentOut is our stock placed with a partner for sale.
	ConsignmentOut ConsignmentDirection = "out"
	// ConsignmentIn is partner stock held by us for sale.
	ConsignmentIn ConsignmentDirection = "in"
)

type Consignment struct {
	gorm.Model
	PartnerID uint                 `json:"partner_id"`
	Partner   Partner              `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
	ProductID uint                 `json:"product_id"`
	Product   Product              `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int                  `json:"quantity"`
	SoldQty   int                  `json:"sold_qty"`
	UnitPrice float64              `json:"unit_price"`
	Direction ConsignmentDirection `json:"direction"`
	Status    ConsignmentStatus    `json:"status"`
	ExpiresAt time.Time            `json:"expires_at"`
	SettledAt *time.Time           `json:"settled_at"`
}

func (c *Consignment) BeforeCreate(tx *gorm.DB) error {
	if c.Status == "" {
		c.Status = ConsignmentActive
	}
	if c.Direction == "" {
		c.Direction = ConsignmentOut
	}
	return nil
}

// SettlementAmount is what the partner owes (direction out) or what we owe
// (direction in) for the units sold.
func (c *Consignment) SettlementAmount() float64 {
	return c.UnitPrice * float64(c.SoldQty)
}
