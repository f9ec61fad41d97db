package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thetahouse/thetahouse/models"
)

func TestCanUnknownUser(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.Can(999, "product", "read")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCanDeniesWithoutRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	user := createUser(t, db, "norole@thetahouse.test", nil)

	allowed, err := svc.Can(user.ID, "product", "read")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCanDeniesEmptyGrantSet(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	role := createRole(t, svc, "Intern")
	createPermission(t, svc, "product", "read")
	user := createUser(t, db, "intern@thetahouse.test", &role.ID)

	allowed, err := svc.Can(user.ID, "product", "read")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCanSuperadminAnyCase(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	role := createRole(t, svc, "SuperAdmin")
	user := createUser(t, db, "root@thetahouse.test", &role.ID)

	// No grant rows at all; the name alone is enough
	allowed, err := svc.Can(user.ID, "order", "delete")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCanUnrestrictedFlag(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	role := &models.Role{Name: "Owner", IsUnrestricted: true}
	require.NoError(t, svc.CreateRole(role))
	user := createUser(t, db, "owner@thetahouse.test", &role.ID)

	allowed, err := svc.Can(user.ID, "report", "read")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCanBlankCheckAlwaysAllows(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	user := createUser(t, db, "norole@thetahouse.test", nil)

	for _, pair := range [][2]string{{"", ""}, {"  ", "read"}, {"product", ""}} {
		allowed, err := svc.Can(user.ID, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, allowed, "resource=%q action=%q", pair[0], pair[1])
	}
}

func TestCanMatchesGrantedPair(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	role := createRole(t, svc, "Clerk")
	read := createPermission(t, svc, "product", "read")
	createPermission(t, svc, "product", "delete")
	require.NoError(t, svc.ReplacePermissions(role.ID, []uint{read.ID}))

	user := createUser(t, db, "clerk@thetahouse.test", &role.ID)

	allowed, err := svc.Can(user.ID, "product", "read")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Can(user.ID, "product", "delete")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestParsePermission(t *testing.T) {
	cases := []struct {
		key      string
		resource string
		action   string
	}{
		{"product:read", "product", "read"},
		{" product : read ", "product", "read"},
		{"product", "product", ""},
		{"", "", ""},
		{":read", "", "read"},
	}
	for _, tc := range cases {
		resource, action := ParsePermission(tc.key)
		assert.Equal(t, tc.resource, resource, "key=%q", tc.key)
		assert.Equal(t, tc.action, action, "key=%q", tc.key)
	}
}

func TestRoleUnrestricted(t *testing.T) {
	assert.True(t, (&models.Role{Name: "superadmin"}).Unrestricted())
	assert.True(t, (&models.Role{Name: "SUPERADMIN"}).Unrestricted())
	assert.True(t, (&models.Role{Name: "admin", IsUnrestricted: true}).Unrestricted())
	assert.False(t, (&models.Role{Name: "admin"}).Unrestricted())
	assert.False(t, (&models.Role{Name: "superadministrator"}).Unrestricted())
}
