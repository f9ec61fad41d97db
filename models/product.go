package models

import (
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name            string  `json:"name"`
	SKU             string  `json:"sku" gorm:"unique"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	Cost            float64 `json:"cost"`
	StockQty        int     `json:"stock_qty"`
	ImageURL        string  `json:"image_url"`
	Discount        float64 `json:"discount"` // Discount percentage
	DiscountedPrice float64 `json:"discounted_price" gorm:"-"`
}

func (p *Product) AfterFind(tx *gorm.DB) (err error) {
	p.DiscountedPrice = p.Price - (p.Price * p.Discount / 100)
	return
}
