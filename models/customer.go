package models

import (
	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model
	Name         string        `json:"name"`
	Email        string        `json:"email" gorm:"index"`
	Phone        string        `json:"phone"`
	Address      string        `json:"address"`
	Notes        string        `json:"notes"`
	Orders       []Order       `json:"orders,omitempty" gorm:"foreignKey:CustomerID"`
	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:CustomerID"`
}
