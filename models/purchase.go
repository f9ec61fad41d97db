package models

import (
	"fmt"

	"gorm.io/gorm"
)

type PurchaseStatus string

const (
	PurchasePending  PurchaseStatus = "pending"
	PurchaseReceived PurchaseStatus = "received"
	PurchaseCanceled PurchaseStatus = "canceled"
)

type PurchaseItem struct {
	gorm.Model
	PurchaseID uint    `json:"purchase_id"`
	ProductID  uint    `json:"product_id"`
	Product    Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity   int     `json:"quantity"`
	UnitCost   float64 `json:"unit_cost"`
}

type Purchase struct {
	gorm.Model
	Number    string         `json:"number" gorm:"unique"`
	PartnerID uint           `json:"partner_id"`
	Partner   Partner        `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
	Status    PurchaseStatus `json:"status"`
	Items     []PurchaseItem `json:"items,omitempty" gorm:"foreignKey:PurchaseID"`
	Total     float64        `json:"total"`
	Notes     string         `json:"notes"`
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PurchasePending
	}
	return nil
}

// ComputeTotal recalculates the purchase total from its line items.
func (p *Purchase) ComputeTotal() float64 {
	total := 0.0
	for _, item := range p.Items {
		total += item.UnitCost * float64(item.Quantity)
	}
	p.Total = total
	return total
}

// UpdateStatus enforces the purchase state machine and persists the change.
func (p *Purchase) UpdateStatus(tx *gorm.DB, newStatus PurchaseStatus) error {
	switch p.Status {
	case PurchasePending:
		if newStatus != PurchaseReceived && newStatus != PurchaseCanceled {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case PurchaseReceived, PurchaseCanceled:
		return fmt.Errorf("no transitions allowed from %s", p.Status)
	}

	p.Status = newStatus
	return tx.Save(p).Error
}
