package models

import (
	"gorm.io/gorm"
)

type PartnerKind string

const (
	PartnerSupplier PartnerKind = "supplier"
	PartnerCustomer PartnerKind = "customer"
	PartnerBoth     PartnerKind = "both"
)

// Partner is an external party the business trades with: suppliers we purchase
// from, wholesale customers, or both.
type Partner struct {
	gorm.Model
	Name         string        `json:"name"`
	Kind         PartnerKind   `json:"kind"`
	ContactName  string        `json:"contact_name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Address      string        `json:"address"`
	TaxNumber    string        `json:"tax_number"`
	Notes        string        `json:"notes"`
	Purchases    []Purchase    `json:"purchases,omitempty" gorm:"foreignKey:PartnerID"`
	Consignments []Consignment `json:"consignments,omitempty" gorm:"foreignKey:PartnerID"`
}

func (p *Partner) BeforeCreate(tx *gorm.DB) error {
	if p.Kind == "" {
		p.Kind = PartnerSupplier
	}
	return nil
}
