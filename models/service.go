package models

import (
	"gorm.io/gorm"
)

// Service is a bookable therapy or wellness offering.
type Service struct {
	gorm.Model
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Duration        Duration `json:"duration" gorm:"type:jsonb"`
	Price           float64  `json:"price"`
	BufferTime      Duration `json:"buffer_time" gorm:"type:jsonb"` // Time between appointments
	Discount        float64  `json:"discount"`                     // Discount percentage
	DiscountedPrice float64  `json:"discounted_price" gorm:"-"`
	Active          bool     `json:"active" gorm:"default:true"`
}

func (s *Service) AfterFind(tx *gorm.DB) (err error) {
	s.DiscountedPrice = s.Price - (s.Price * s.Discount / 100)
	return
}
