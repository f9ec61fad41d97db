package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// SuperadminRole is the reserved role name that bypasses permission checks.
const SuperadminRole = "superadmin"

type Role struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"unique"`
	Description    string         `json:"description"`
	IsUnrestricted bool           `json:"is_unrestricted"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
	Permissions    []Permission   `json:"permissions,omitempty" gorm:"many2many:role_permissions;"`
}

// Unrestricted reports whether the role implicitly holds every permission,
// either via the explicit flag or the reserved name.
func (r *Role) Unrestricted() bool {
	return r.IsUnrestricted || strings.EqualFold(r.Name, SuperadminRole)
}
