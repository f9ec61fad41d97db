package rbac

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for authorization operations. Controllers translate these
// into HTTP statuses at the boundary.
var (
	// ErrConflict is returned for duplicate role names, duplicate
	// (resource, action) pairs, or deletes blocked by existing references.
	ErrConflict = errors.New("rbac: conflict")

	// ErrNotFound is returned when a referenced role, permission or user
	// does not exist.
	ErrNotFound = errors.New("rbac: not found")

	// ErrValidation is returned when an operation's input is rejected as a
	// whole, e.g. unknown permission ids in a replace.
	ErrValidation = errors.New("rbac: validation failed")

	// ErrForbidden is returned when an evaluation denies access.
	ErrForbidden = errors.New("rbac: forbidden")
)

// UnknownPermissionsError reports which permission ids in a replace request do
// not exist in the registry. It unwraps to ErrValidation.
type UnknownPermissionsError struct {
	IDs []uint
}

func (e *UnknownPermissionsError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("rbac: validation failed: unknown permission ids: %s", strings.Join(parts, ", "))
}

func (e *UnknownPermissionsError) Unwrap() error {
	return ErrValidation
}

// RoleInUseError reports how many users still reference a role a delete was
// attempted on. It unwraps to ErrConflict.
type RoleInUseError struct {
	RoleID    uint
	UserCount int64
}

func (e *RoleInUseError) Error() string {
	return fmt.Sprintf("rbac: conflict: role %d is assigned to %d user(s)", e.RoleID, e.UserCount)
}

func (e *RoleInUseError) Unwrap() error {
	return ErrConflict
}
