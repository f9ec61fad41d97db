package models

import (
	"time"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name"`
	Email        string         `json:"email" gorm:"unique"`
	Password     string         `json:"password,omitempty"`
	IsVerified   bool           `json:"is_verified"`
	RoleID       *uint          `json:"role_id"`
	Role         *Role          `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Appointments []Appointment  `json:"appointments,omitempty" gorm:"foreignKey:PractitionerID"`
	WorkingHours []WorkingHours `json:"working_hours,omitempty" gorm:"foreignKey:PractitionerID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
