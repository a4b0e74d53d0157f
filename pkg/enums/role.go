package enums

// Role is the coarse authorization level attached to an application user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RolePPIC    Role = "ppic"
	RoleSales   Role = "sales"
	RoleRegular Role = "regular"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RolePPIC, RoleSales, RoleRegular:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole validates a raw role string, defaulting empty input to regular.
func ParseRole(raw string) (Role, bool) {
	if raw == "" {
		return RoleRegular, true
	}
	role := Role(raw)
	return role, role.IsValid()
}

// IsStaff reports whether the role belongs to the back-office workflow.
func (r Role) IsStaff() bool {
	switch r {
	case RoleAdmin, RolePPIC, RoleSales:
		return true
	}
	return false
}

// StaffRoles are the roles allowed to manage the catalog.
func StaffRoles() []Role {
	return []Role{RoleAdmin, RolePPIC, RoleSales}
}
