package middleware

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thetahouse/thetahouse/models"
	"github.com/thetahouse/thetahouse/rbac"
)

func newTestService(t *testing.T) (*rbac.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Role{}, &models.Permission{}))

	return rbac.NewService(db), db
}

// asUser fakes the auth middleware by planting the user ID in Locals.
func asUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func newGatedApp(t *testing.T, svc *rbac.Service, userID uint, resource, action string, invoked *bool) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/guarded", asUser(userID), RequirePermission(svc, resource, action), func(c *fiber.Ctx) error {
		*invoked = true
		return c.SendString("ok")
	})
	return app
}

func TestRequirePermissionAllows(t *testing.T) {
	svc, db := newTestService(t)

	role := &models.Role{Name: "Clerk"}
	require.NoError(t, svc.CreateRole(role))
	perm := &models.Permission{Resource: "product", Action: "read"}
	require.NoError(t, svc.CreatePermission(perm))
	require.NoError(t, svc.ReplacePermissions(role.ID, []uint{perm.ID}))

	user := &models.User{Name: "Clerk", Email: "clerk@thetahouse.test", RoleID: &role.ID}
	require.NoError(t, db.Create(user).Error)

	invoked := false
	app := newGatedApp(t, svc, user.ID, "product", "read", &invoked)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, invoked)
}

func TestRequirePermissionDeniesAndSkipsHandler(t *testing.T) {
	svc, db := newTestService(t)

	role := &models.Role{Name: "Clerk"}
	require.NoError(t, svc.CreateRole(role))

	user := &models.User{Name: "Clerk", Email: "clerk@thetahouse.test", RoleID: &role.ID}
	require.NoError(t, db.Create(user).Error)

	invoked := false
	app := newGatedApp(t, svc, user.ID, "product", "delete", &invoked)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.False(t, invoked)
}

func TestRequirePermissionSuperadmin(t *testing.T) {
	svc, db := newTestService(t)

	role := &models.Role{Name: "superadmin"}
	require.NoError(t, svc.CreateRole(role))
	user := &models.User{Name: "Root", Email: "root@thetahouse.test", RoleID: &role.ID}
	require.NoError(t, db.Create(user).Error)

	invoked := false
	app := newGatedApp(t, svc, user.ID, "anything", "at-all", &invoked)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, invoked)
}

func TestRequirePermissionUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	invoked := false
	app := newGatedApp(t, svc, 999, "product", "read", &invoked)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.False(t, invoked)
}

func TestRequirePermissionMissingLocals(t *testing.T) {
	svc, _ := newTestService(t)

	invoked := false
	app := fiber.New()
	app.Get("/guarded", RequirePermission(svc, "product", "read"), func(c *fiber.Ctx) error {
		invoked = true
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.False(t, invoked)
}

func TestRequirePermissionPanicsOnBlankPair(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Panics(t, func() { RequirePermission(svc, "", "read") })
	assert.Panics(t, func() { RequirePermission(svc, "product", " ") })
}

func TestRequireRole(t *testing.T) {
	svc, db := newTestService(t)

	manager := &models.Role{Name: "Manager"}
	require.NoError(t, svc.CreateRole(manager))
	root := &models.Role{Name: "superadmin"}
	require.NoError(t, svc.CreateRole(root))

	managerUser := &models.User{Name: "M", Email: "m@thetahouse.test", RoleID: &manager.ID}
	require.NoError(t, db.Create(managerUser).Error)
	rootUser := &models.User{Name: "R", Email: "r@thetahouse.test", RoleID: &root.ID}
	require.NoError(t, db.Create(rootUser).Error)
	noRoleUser := &models.User{Name: "N", Email: "n@thetahouse.test"}
	require.NoError(t, db.Create(noRoleUser).Error)

	newApp := func(userID uint) *fiber.App {
		app := fiber.New()
		app.Get("/managers", asUser(userID), RequireRole(svc, "manager"), func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})
		return app
	}

	resp, err := newApp(managerUser.ID).Test(httptest.NewRequest("GET", "/managers", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Unrestricted role passes any role gate
	resp, err = newApp(rootUser.ID).Test(httptest.NewRequest("GET", "/managers", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = newApp(noRoleUser.ID).Test(httptest.NewRequest("GET", "/managers", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
