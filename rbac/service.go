package rbac

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/thetahouse/thetahouse/models"
)

// Service is the authorization core: the permission registry, role store,
// role-permission assignment and the evaluator. It holds its database handle
// explicitly so tests and callers can inject their own.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// --- Permission registry ---

// ListPermissions returns the full catalog ordered for the admin matrix grid.
func (s *Service) ListPermissions() ([]models.Permission, error) {
	var permissions []models.Permission
	if err := s.db.Order("resource, action").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// Resources returns the distinct resource names in the registry.
func (s *Service) Resources() ([]string, error) {
	var resources []string
	if err := s.db.Model(&models.Permission{}).Distinct("resource").Order("resource").Pluck("resource", &resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

// Actions returns the distinct action names in the registry.
func (s *Service) Actions() ([]string, error) {
	var actions []string
	if err := s.db.Model(&models.Permission{}).Distinct("action").Order("action").Pluck("action", &actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

// Matrix is the payload the admin grid is rendered from: the full catalog plus
// the distinct axes, so not every resource needs to define every action.
type Matrix struct {
	Permissions []models.Permission `json:"permissions"`
	Resources   []string            `json:"resources"`
	Actions     []string            `json:"actions"`
}

func (s *Service) PermissionMatrix() (*Matrix, error) {
	permissions, err := s.ListPermissions()
	if err != nil {
		return nil, err
	}
	resources, err := s.Resources()
	if err != nil {
		return nil, err
	}
	actions, err := s.Actions()
	if err != nil {
		return nil, err
	}
	return &Matrix{Permissions: permissions, Resources: resources, Actions: actions}, nil
}

// CreatePermission adds a (resource, action) capability to the registry.
func (s *Service) CreatePermission(permission *models.Permission) error {
	if permission.Resource == "" || permission.Action == "" {
		return ErrValidation
	}

	var existing models.Permission
	err := s.db.Where("resource = ? AND action = ?", permission.Resource, permission.Action).
		First(&existing).Error
	if err == nil {
		return ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if permission.Name == "" {
		permission.Name = permission.Resource + "_" + permission.Action
	}

	return s.db.Create(permission).Error
}

// UpdatePermission changes a permission's description or name. The
// (resource, action) pair is immutable once created; routes already declare it.
func (s *Service) UpdatePermission(id uint, name, description string) (*models.Permission, error) {
	var permission models.Permission
	if err := s.db.First(&permission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if name != "" {
		permission.Name = name
	}
	permission.Description = description

	if err := s.db.Save(&permission).Error; err != nil {
		return nil, err
	}
	return &permission, nil
}

// DeletePermission removes a permission from the registry. Deletion is
// refused while any role still holds the permission, so grants never dangle.
func (s *Service) DeletePermission(id uint) error {
	var permission models.Permission
	if err := s.db.First(&permission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	count := s.db.Model(&permission).Association("Roles").Count()
	if count > 0 {
		return ErrConflict
	}

	// Hard delete: a soft-deleted row would keep holding the unique
	// (resource, action) index and block re-creating the pair.
	return s.db.Unscoped().Delete(&permission).Error
}

// --- Role store ---

func (s *Service) ListRoles() ([]models.Role, error) {
	var roles []models.Role
	if err := s.db.Order("name").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *Service) GetRole(id uint) (*models.Role, error) {
	var role models.Role
	if err := s.db.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// CreateRole adds a named role. Name collisions are checked case-insensitively
// so the reserved "superadmin" name cannot be shadowed.
func (s *Service) CreateRole(role *models.Role) error {
	if role.Name == "" {
		return ErrValidation
	}

	var existing models.Role
	err := s.db.Where("LOWER(name) = LOWER(?)", role.Name).First(&existing).Error
	if err == nil {
		return ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.db.Create(role).Error
}

// UpdateRole changes a role's name or description.
func (s *Service) UpdateRole(id uint, name, description string) (*models.Role, error) {
	role, err := s.GetRole(id)
	if err != nil {
		return nil, err
	}

	if name != "" && !strings.EqualFold(name, role.Name) {
		var existing models.Role
		findErr := s.db.Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).First(&existing).Error
		if findErr == nil {
			return nil, ErrConflict
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return nil, findErr
		}
		role.Name = name
	}
	role.Description = description

	if err := s.db.Save(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// DeleteRole removes a role and its grants. Deletion is refused while any
// user still holds the role; the error carries the dependent count.
func (s *Service) DeleteRole(id uint) error {
	role, err := s.GetRole(id)
	if err != nil {
		return err
	}

	var userCount int64
	if err := s.db.Model(&models.User{}).Where("role_id = ?", id).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return &RoleInUseError{RoleID: id, UserCount: userCount}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(role).Association("Permissions").Clear(); err != nil {
			return err
		}
		// Hard delete so the unique name index frees up for reuse.
		return tx.Unscoped().Delete(role).Error
	})
}

// --- Role-permission assignment ---

// PermissionsForRole returns a role's granted set. Unrestricted roles resolve
// to the entire registry regardless of stored grants.
func (s *Service) PermissionsForRole(roleID uint) ([]models.Permission, error) {
	role, err := s.GetRole(roleID)
	if err != nil {
		return nil, err
	}

	if role.Unrestricted() {
		return s.ListPermissions()
	}

	var permissions []models.Permission
	if err := s.db.Model(role).Association("Permissions").Find(&permissions); err != nil {
		return nil, err
	}
	return permissions, nil
}

// ReplacePermissions atomically replaces a role's granted set with the given
// permission ids. Unknown ids fail the whole call; nothing is applied
// partially. Two concurrent replaces for the same role race at
// last-write-wins; partial edits are never merged.
func (s *Service) ReplacePermissions(roleID uint, permissionIDs []uint) error {
	role, err := s.GetRole(roleID)
	if err != nil {
		return err
	}

	// The unrestricted set is implicit, not stored, so there is nothing to edit.
	if role.Unrestricted() {
		return ErrValidation
	}

	var permissions []models.Permission
	if len(permissionIDs) > 0 {
		if err := s.db.Where("id IN ?", permissionIDs).Find(&permissions).Error; err != nil {
			return err
		}
	}
	if len(permissions) != len(uniqueIDs(permissionIDs)) {
		return &UnknownPermissionsError{IDs: missingIDs(permissionIDs, permissions)}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(role).Association("Permissions").Replace(permissions)
	})
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func missingIDs(requested []uint, found []models.Permission) []uint {
	present := make(map[uint]bool, len(found))
	for _, p := range found {
		present[p.ID] = true
	}
	var missing []uint
	for _, id := range uniqueIDs(requested) {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// --- User-role assignment ---

// AssignRole binds a role to a user, replacing any prior assignment.
func (s *Service) AssignRole(userID, roleID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if _, err := s.GetRole(roleID); err != nil {
		return err
	}

	return s.db.Model(&user).Update("role_id", roleID).Error
}

// UnassignRole removes a user's role, leaving the user with no permissions.
func (s *Service) UnassignRole(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.Model(&user).Update("role_id", nil).Error
}

// RoleOf returns the user's current role, or nil when the user has none.
func (s *Service) RoleOf(userID uint) (*models.Role, error) {
	var user models.User
	if err := s.db.Preload("Role").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user.Role, nil
}

// --- Evaluator ---

// Can decides allow/deny for a (user, resource, action) triple.
//
// A blank resource or action always allows; that is a display-gating shortcut
// for UI capability checks, and every server-enforced route declares a
// non-empty pair. A user without a role is denied everything. Unrestricted
// roles are allowed everything. A missing permission is a plain deny, not an
// error.
func (s *Service) Can(userID uint, resource, action string) (bool, error) {
	if strings.TrimSpace(resource) == "" || strings.TrimSpace(action) == "" {
		return true, nil
	}

	var user models.User
	if err := s.db.Preload("Role.Permissions").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	if user.Role == nil {
		return false, nil
	}
	if user.Role.Unrestricted() {
		return true, nil
	}

	for _, permission := range user.Role.Permissions {
		if permission.Resource == resource && permission.Action == action {
			return true, nil
		}
	}
	return false, nil
}

// ParsePermission splits a "resource:action" key as declared on routes and
// sent by the capability-check endpoint. An empty key yields empty parts,
// which Can treats as always allowed.
func ParsePermission(key string) (resource, action string) {
	parts := strings.SplitN(key, ":", 2)
	resource = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		action = strings.TrimSpace(parts[1])
	}
	return resource, action
}
