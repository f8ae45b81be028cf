// Package authz holds the pure role-to-capability mapping consulted before
// every directory mutation. The predicates have no I/O and can be evaluated
// with nothing but a role value.
package authz

import "github.com/userdeck/userdeck/internal/shared"

// CanAdd reports whether the role may create directory records.
func CanAdd(role shared.Role) bool {
	return role == shared.RoleAdmin
}

// CanEdit reports whether the role may modify existing records.
func CanEdit(role shared.Role) bool {
	return role == shared.RoleAdmin || role == shared.RoleEditor
}

// CanDelete reports whether the role may remove records.
func CanDelete(role shared.Role) bool {
	return role == shared.RoleAdmin
}

// CanChangeRole reports whether the role may alter another record's role
// attribute during an edit. Editors may edit every other field.
func CanChangeRole(role shared.Role) bool {
	return role == shared.RoleAdmin
}
