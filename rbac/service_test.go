package rbac

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thetahouse/thetahouse/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
	))
	return db
}

func createPermission(t *testing.T, svc *Service, resource, action string) *models.Permission {
	t.Helper()
	p := &models.Permission{Resource: resource, Action: action}
	require.NoError(t, svc.CreatePermission(p))
	return p
}

func createRole(t *testing.T, svc *Service, name string) *models.Role {
	t.Helper()
	r := &models.Role{Name: name}
	require.NoError(t, svc.CreateRole(r))
	return r
}

func createUser(t *testing.T, db *gorm.DB, email string, roleID *uint) *models.User {
	t.Helper()
	u := &models.User{Name: "Test User", Email: email, RoleID: roleID}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestCreatePermissionDuplicatePair(t *testing.T) {
	svc := NewService(newTestDB(t))

	createPermission(t, svc, "product", "create")

	err := svc.CreatePermission(&models.Permission{Resource: "product", Action: "create"})
	assert.ErrorIs(t, err, ErrConflict)

	// Same resource with a different action is fine
	assert.NoError(t, svc.CreatePermission(&models.Permission{Resource: "product", Action: "read"}))
}

func TestCreatePermissionRequiresPair(t *testing.T) {
	svc := NewService(newTestDB(t))

	assert.ErrorIs(t, svc.CreatePermission(&models.Permission{Resource: "product"}), ErrValidation)
	assert.ErrorIs(t, svc.CreatePermission(&models.Permission{Action: "read"}), ErrValidation)
}

func TestCreateRoleDuplicateNameCaseInsensitive(t *testing.T) {
	svc := NewService(newTestDB(t))

	createRole(t, svc, "Manager")

	err := svc.CreateRole(&models.Role{Name: "manager"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeleteRoleInUse(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	role := createRole(t, svc, "Manager")
	createUser(t, db, "manager@thetahouse.test", &role.ID)

	err := svc.DeleteRole(role.ID)
	assert.ErrorIs(t, err, ErrConflict)

	var inUse *RoleInUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, int64(1), inUse.UserCount)

	// Role survives the refused delete
	_, err = svc.GetRole(role.ID)
	assert.NoError(t, err)
}

func TestDeletePermissionReferencedByRole(t *testing.T) {
	svc := NewService(newTestDB(t))

	role := createRole(t, svc, "Manager")
	perm := createPermission(t, svc, "product", "read")
	require.NoError(t, svc.ReplacePermissions(role.ID, []uint{perm.ID}))

	assert.ErrorIs(t, svc.DeletePermission(perm.ID), ErrConflict)

	// Unreference, then the delete goes through
	require.NoError(t, svc.ReplacePermissions(role.ID, []uint{}))
	assert.NoError(t, svc.DeletePermission(perm.ID))
}

func grantIDs(t *testing.T, svc *Service, roleID uint) []uint {
	t.Helper()
	perms, err := svc.PermissionsForRole(roleID)
	require.NoError(t, err)
	ids := make([]uint, len(perms))
	for i, p := range perms {
		ids[i] = p.ID
	}
	return ids
}

func TestReplacePermissionsAtomic(t *testing.T) {
	svc := NewService(newTestDB(t))

	role := createRole(t, svc, "Manager")
	a := createPermission(t, svc, "product", "read")
	b := createPermission(t, svc, "product", "update")
	c := createPermission(t, svc, "product", "delete")

	require.NoError(t, svc.ReplacePermissions(role.ID, []uint{a.ID, b.ID}))
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, grantIDs(t, svc, role.ID))

	// {A, B} -> {B, C}: A removed, B retained, C added
	require.NoError(t, svc.ReplacePermissions(role.ID, []uint{b.ID, c.ID}))
	assert.ElementsMatch(t, []uint{b.ID, c.ID}, grantIDs(t, svc, role.ID))
}

func TestReplacePermissionsUnknownIDNoPartialWrite(t *testing.T) {
	svc := NewService(newTestDB(t))

	role := createRole(t, svc, "Manager")
	a := createPermission(t, svc, "product", "read")
	b := createPermission(t, svc, "product", "update")
	require.NoError(t, svc.ReplacePermissions(role.ID, []uint{a.ID, b.ID}))

	err := svc.ReplacePermissions(role.ID, []uint{b.ID, 999})
	assert.ErrorIs(t, err, ErrValidation)

	var unknown *UnknownPermissionsError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []uint{999}, unknown.IDs)

	// Granted set is untouched
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, grantIDs(t, svc, role.ID))
}

func TestReplacePermissionsUnknownRole(t *testing.T) {
	svc := NewService(newTestDB(t))
	assert.ErrorIs(t, svc.ReplacePermissions(42, nil), ErrNotFound)
}

func TestReplacePermissionsSuperadminNotEditable(t *testing.T) {
	svc := NewService(newTestDB(t))

	role := createRole(t, svc, "Superadmin")
	perm := createPermission(t, svc, "product", "read")

	assert.ErrorIs(t, svc.ReplacePermissions(role.ID, []uint{perm.ID}), ErrValidation)
}

func TestSuperadminResolvesToFullRegistry(t *testing.T) {
	svc := NewService(newTestDB(t))

	role := createRole(t, svc, "SUPERADMIN")
	createPermission(t, svc, "product", "read")
	createPermission(t, svc, "order", "delete")

	// No grant rows exist, the registry is resolved anyway
	perms, err := svc.PermissionsForRole(role.ID)
	require.NoError(t, err)
	assert.Len(t, perms, 2)
}

func TestAssignRoleReplacesPriorRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	r1 := createRole(t, svc, "Manager")
	r2 := createRole(t, svc, "Employee")
	user := createUser(t, db, "staff@thetahouse.test", &r1.ID)

	require.NoError(t, svc.AssignRole(user.ID, r2.ID))

	role, err := svc.RoleOf(user.ID)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, r2.ID, role.ID)
}

func TestAssignRoleUnknownIDs(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	role := createRole(t, svc, "Manager")
	user := createUser(t, db, "staff@thetahouse.test", nil)

	assert.ErrorIs(t, svc.AssignRole(999, role.ID), ErrNotFound)
	assert.ErrorIs(t, svc.AssignRole(user.ID, 999), ErrNotFound)
}

func TestUnassignRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	role := createRole(t, svc, "Manager")
	user := createUser(t, db, "staff@thetahouse.test", &role.ID)

	require.NoError(t, svc.UnassignRole(user.ID))

	got, err := svc.RoleOf(user.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPermissionMatrix(t *testing.T) {
	svc := NewService(newTestDB(t))

	createPermission(t, svc, "product", "read")
	createPermission(t, svc, "product", "update")
	createPermission(t, svc, "order", "read")

	matrix, err := svc.PermissionMatrix()
	require.NoError(t, err)
	assert.Len(t, matrix.Permissions, 3)
	assert.Equal(t, []string{"order", "product"}, matrix.Resources)
	assert.Equal(t, []string{"read", "update"}, matrix.Actions)
}

func TestRoleDeleteClearsGrants(t *testing.T) {
	svc := NewService(newTestDB(t))

	role := createRole(t, svc, "Temp")
	perm := createPermission(t, svc, "product", "read")
	require.NoError(t, svc.ReplacePermissions(role.ID, []uint{perm.ID}))

	require.NoError(t, svc.DeleteRole(role.ID))

	// The permission is free to delete once its only holder is gone
	assert.NoError(t, svc.DeletePermission(perm.ID))
}

func TestScenarioManagerGrantLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	role := createRole(t, svc, "Manager")
	read := createPermission(t, svc, "product", "read")
	update := createPermission(t, svc, "product", "update")
	createPermission(t, svc, "product", "delete")

	user := createUser(t, db, "manager@thetahouse.test", &role.ID)
	require.NoError(t, svc.ReplacePermissions(role.ID, []uint{read.ID, update.ID}))

	allowed, err := svc.Can(user.ID, "product", "update")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Can(user.ID, "product", "delete")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Shrink the grant set; update is now denied
	require.NoError(t, svc.ReplacePermissions(role.ID, []uint{read.ID}))

	allowed, err = svc.Can(user.ID, "product", "update")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestDeletePermissionFreesPairForReuse(t *testing.T) {
	svc := NewService(newTestDB(t))

	perm := createPermission(t, svc, "product", "read")
	require.NoError(t, svc.DeletePermission(perm.ID))

	// The unique (resource, action) index must not keep holding the pair
	assert.NoError(t, svc.CreatePermission(&models.Permission{Resource: "product", Action: "read"}))
}

func TestDeleteRoleFreesNameForReuse(t *testing.T) {
	svc := NewService(newTestDB(t))

	role := createRole(t, svc, "Seasonal")
	require.NoError(t, svc.DeleteRole(role.ID))

	assert.NoError(t, svc.CreateRole(&models.Role{Name: "Seasonal"}))
}

func TestCreateSurfacesQueryFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// A failing duplicate lookup must not read as "no duplicate"
	err = svc.CreatePermission(&models.Permission{Resource: "product", Action: "read"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConflict)

	err = svc.CreateRole(&models.Role{Name: "Manager"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestScenarioInvalidReplaceKeepsPriorSet(t *testing.T) {
	svc := NewService(newTestDB(t))

	role := createRole(t, svc, "Manager")
	read := createPermission(t, svc, "product", "read")
	require.NoError(t, svc.ReplacePermissions(role.ID, []uint{read.ID}))

	err := svc.ReplacePermissions(role.ID, []uint{999})
	assert.True(t, errors.Is(err, ErrValidation))

	assert.Equal(t, []uint{read.ID}, grantIDs(t, svc, role.ID))
}
