package auth

const (
	RoleEmployee  = "employee"
	RoleManager   = "manager"
	RoleHR        = "hr"
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
	RoleTech      = "tech"
	RoleSuperUser = "superuser"
)

// privilegedRoles is the administrative role set that may cancel another
// employee's coverage request, accept an offer without an invitation, and
// finalize coverage.
var privilegedRoles = map[string]struct{}{
	RoleHR:        {},
	RoleOwner:     {},
	RoleAdmin:     {},
	RoleTech:      {},
	RoleSuperUser: {},
}

func IsPrivileged(roleName string) bool {
	_, ok := privilegedRoles[roleName]
	return ok
}

func PrivilegedRoles() []string {
	out := make([]string, 0, len(privilegedRoles))
	for role := range privilegedRoles {
		out = append(out, role)
	}
	return out
}

type UserContext struct {
	UserID     string
	EmployeeID string
	RoleName   string
}

func (u UserContext) Privileged() bool {
	return IsPrivileged(u.RoleName)
}
