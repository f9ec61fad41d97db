package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Permission struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Resource    string         `json:"resource" gorm:"uniqueIndex:idx_permissions_resource_action"` // e.g., "product", "order"
	Action      string         `json:"action" gorm:"uniqueIndex:idx_permissions_resource_action"`   // e.g., "create", "read", "update", "delete"
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
	Roles       []Role         `json:"roles,omitempty" gorm:"many2many:role_permissions;foreignKey:ID;joinForeignKey:PermissionID;references:ID;joinReferences:RoleID"`
}

// Key returns the "resource:action" form used by route declarations and the
// capability-check endpoint.
func (p *Permission) Key() string {
	return fmt.Sprintf("%s:%s", p.Resource, p.Action)
}
