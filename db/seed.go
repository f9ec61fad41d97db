package db

import (
	"fmt"
	"log"

	"github.com/thetahouse/thetahouse/models"
)

// Seed creates the default roles and the permission catalog. Safe to run
// repeatedly; existing rows are left alone.
func Seed() {
	seedRoles()
	seedPermissions()
	seedRoleGrants()
	fmt.Println("✅ Default roles and permissions seeded!")
}

func seedRoles() {
	roles := []models.Role{
		{Name: models.SuperadminRole, Description: "Unrestricted access to everything", IsUnrestricted: true},
		{Name: "admin", Description: "Administrator with full explicit access"},
		{Name: "manager", Description: "Manages sales, inventory and scheduling"},
		{Name: "employee", Description: "Day-to-day operations, read-mostly"},
	}

	for _, role := range roles {
		var existing models.Role
		if DB.Where("LOWER(name) = LOWER(?)", role.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&role)
		}
	}
}

func seedPermissions() {
	resources := []string{
		"customer", "partner", "product", "service", "inventory",
		"order", "purchase", "consignment", "appointment", "payment",
		"transaction", "report", "user", "role", "permission",
	}
	actions := []string{"create", "read", "update", "delete"}

	for _, resource := range resources {
		for _, action := range actions {
			var existing models.Permission
			if DB.Where("resource = ? AND action = ?", resource, action).First(&existing).RowsAffected == 0 {
				DB.Create(&models.Permission{
					Name:        resource + "_" + action,
					Description: fmt.Sprintf("%s %ss", action, resource),
					Resource:    resource,
					Action:      action,
				})
			}
		}
	}
}

// needsGrants reports whether a role exists and has no permissions yet.
// Grant seeding never overwrites a set an operator already edited.
func needsGrants(role *models.Role, name string) bool {
	if DB.Where("name = ?", name).First(role).RowsAffected == 0 {
		return false
	}
	return DB.Model(role).Association("Permissions").Count() == 0
}

func seedRoleGrants() {
	// admin: every permission, explicitly
	var adminRole models.Role
	if needsGrants(&adminRole, "admin") {
		var allPermissions []models.Permission
		DB.Find(&allPermissions)

		if err := DB.Model(&adminRole).Association("Permissions").Replace(allPermissions); err != nil {
			log.Printf("Failed to seed admin grants: %v", err)
		}
	}

	// manager: full access to operational resources, read on reporting
	var managerRole models.Role
	if needsGrants(&managerRole, "manager") {
		var managerPermissions []models.Permission
		DB.Where("resource IN ?", []string{
			"customer", "partner", "product", "service", "inventory",
			"order", "purchase", "consignment", "appointment", "payment",
		}).Find(&managerPermissions)

		var readOnly []models.Permission
		DB.Where("resource IN ? AND action = ?", []string{"transaction", "report"}, "read").Find(&readOnly)
		managerPermissions = append(managerPermissions, readOnly...)

		if err := DB.Model(&managerRole).Association("Permissions").Replace(managerPermissions); err != nil {
			log.Printf("Failed to seed manager grants: %v", err)
		}
	}

	// employee: read everything operational, book and update appointments and orders
	var employeeRole models.Role
	if needsGrants(&employeeRole, "employee") {
		var employeePermissions []models.Permission
		DB.Where("resource IN ? AND action = ?", []string{
			"customer", "product", "service", "inventory", "order", "appointment",
		}, "read").Find(&employeePermissions)

		var writable []models.Permission
		DB.Where("resource IN ? AND action IN ?",
			[]string{"appointment", "order"}, []string{"create", "update"}).Find(&writable)
		employeePermissions = append(employeePermissions, writable...)

		if err := DB.Model(&employeeRole).Association("Permissions").Replace(employeePermissions); err != nil {
			log.Printf("Failed to seed employee grants: %v", err)
		}
	}
}
