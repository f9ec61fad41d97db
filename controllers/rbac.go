package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/models"
	"github.com/thetahouse/thetahouse/rbac"
	"github.com/thetahouse/thetahouse/utils"
)

// rbacError translates the authorization core's sentinel errors into HTTP
// responses.
func rbacError(c *fiber.Ctx, err error) error {
	var unknown *rbac.UnknownPermissionsError
	if errors.As(err, &unknown) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":       "Unknown permission ids",
			"unknown_ids": unknown.IDs,
		})
	}

	var inUse *rbac.RoleInUseError
	if errors.As(err, &inUse) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":      "Role is still assigned to users",
			"user_count": inUse.UserCount,
		})
	}

	switch {
	case errors.Is(err, rbac.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already exists or still referenced"})
	case errors.Is(err, rbac.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, rbac.ErrValidation):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Invalid input"})
	case errors.Is(err, rbac.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	return uint(id), err
}

// CreateRole creates a new role
func CreateRole(svc *rbac.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := new(models.Role)

		if err := c.BodyParser(role); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot parse JSON",
			})
		}

		if role.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Role name is required",
			})
		}

		if err := svc.CreateRole(role); err != nil {
			return rbacError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(role)
	}
}

// GetRoles returns all roles
func GetRoles(svc *rbac.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, err := svc.ListRoles()
		if err != nil {
			return rbacError(c, err)
		}
		return c.JSON(roles)
	}
}

// UpdateRole updates a role's name and description
func UpdateRole(svc *rbac.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role id"})
		}

		input := new(models.Role)
		if err := c.BodyParser(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot parse JSON",
			})
		}

		role, err := svc.UpdateRole(id, input.Name, input.Description)
		if err != nil {
			return rbacError(c, err)
		}
		return c.JSON(role)
	}
}

// DeleteRole deletes a role that no user holds
func DeleteRole(svc *rbac.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role id"})
		}

		if err := svc.DeleteRole(id); err != nil {
			return rbacError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CreatePermission creates a new permission
func CreatePermission(svc *rbac.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		permission := new(models.Permission)

		if err := c.BodyParser(permission); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot parse JSON",
			})
		}

		if permission.Resource == "" || permission.Action == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Resource and action are required",
			})
		}

		if err := svc.CreatePermission(permission); err != nil {
			return rbacError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(permission)
	}
}

// GetPermissions returns the full permission catalog
func GetPermissions(svc *rbac.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		permissions, err := svc.ListPermissions()
		if err != nil {
			return rbacError(c, err)
		}
		return c.JSON(permissions)
	}
}

// GetPermissionMatrix returns the catalog plus the distinct resource and
// action lists the admin grid is built from.
func GetPermissionMatrix(svc *rbac.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matrix, err := svc.PermissionMatrix()
		if err != nil {
			return rbacError(c, err)
		}
		return c.JSON(matrix)
	}
}

// UpdatePermission updates a permission's name and description
func UpdatePermission(svc *rbac.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid permission id"})
		}

		input := new(models.Permission)
		if err := c.BodyParser(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot parse JSON",
			})
		}

		permission, err := svc.UpdatePermission(id, input.Name, input.Description)
		if err != nil {
			return rbacError(c, err)
		}
		return c.JSON(permission)
	}
}

// DeletePermission deletes an unreferenced permission
func DeletePermission(svc *rbac.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid permission id"})
		}

		if err := svc.DeletePermission(id); err != nil {
			return rbacError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetRolePermissions returns a role's granted permission set
func GetRolePermissions(svc *rbac.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role id"})
		}

		permissions, err := svc.PermissionsForRole(id)
		if err != nil {
			return rbacError(c, err)
		}

		ids := make([]uint, len(permissions))
		for i, p := range permissions {
			ids[i] = p.ID
		}

		return c.JSON(fiber.Map{
			"role_id":        id,
			"permission_ids": ids,
			"permissions":    permissions,
		})
	}
}

// ReplaceRolePermissions atomically replaces a role's granted set
func ReplaceRolePermissions(svc *rbac.Service) fiber.Handler {
	// An empty permission_ids list is valid: it clears the role's grants.
	type ReplaceInput struct {
		PermissionIDs []uint `json:"permission_ids"`
	}

	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role id"})
		}

		input := new(ReplaceInput)
		if err := c.BodyParser(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot parse JSON",
			})
		}

		if err := svc.ReplacePermissions(id, input.PermissionIDs); err != nil {
			return rbacError(c, err)
		}

		return c.JSON(fiber.Map{
			"message": "Permissions replaced successfully",
		})
	}
}

// AssignRoleToUser assigns a role to a user, replacing any prior role
func AssignRoleToUser(svc *rbac.Service) fiber.Handler {
	type AssignRoleInput struct {
		UserID uint `json:"user_id" validate:"required"`
		RoleID uint `json:"role_id" validate:"required"`
	}

	return func(c *fiber.Ctx) error {
		input := new(AssignRoleInput)

		if err := c.BodyParser(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot parse JSON",
			})
		}
		if err := utils.ValidateStruct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if err := svc.AssignRole(input.UserID, input.RoleID); err != nil {
			return rbacError(c, err)
		}

		return c.JSON(fiber.Map{
			"message": "Role assigned successfully",
		})
	}
}

// CheckCapability answers a UI capability probe like ?permission=product:update.
// An empty permission string always reports allowed; this endpoint gates
// display only, never mutations.
func CheckCapability(svc *rbac.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		resource, action := rbac.ParsePermission(c.Query("permission"))
		allowed, err := svc.Can(userID, resource, action)
		if err != nil {
			return rbacError(c, err)
		}

		return c.JSON(fiber.Map{
			"permission": c.Query("permission"),
			"allowed":    allowed,
		})
	}
}
