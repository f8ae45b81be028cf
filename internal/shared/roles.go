package shared

// Role is the self-declared access level of a session or the role attribute of
// a directory record.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleViewer Role = "Viewer"
	// RoleNone marks an unauthenticated session.
	RoleNone Role = ""
)

// Roles lists the assignable roles in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleEditor, RoleViewer}
}

// ParseRole maps a raw string onto a known role.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin, RoleEditor, RoleViewer:
		return Role(raw), true
	default:
		return RoleNone, false
	}
}

// Valid reports whether the role is one of the three assignable values.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}
