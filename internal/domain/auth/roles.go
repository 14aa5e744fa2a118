package auth

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

var SeedRoles = []string{RoleAdmin, RoleHR, RoleEmployee}

// Allowed reports whether roleName is one of the required roles. It is
// the single authorization predicate; endpoints compose it through
// middleware.RequireRole instead of building a role hierarchy.
func Allowed(roleName string, required ...string) bool {
	for _, role := range required {
		if roleName == role {
			return true
		}
	}
	return false
}

// Staff is the role set for operations open to HR and administrators.
func Staff() []string {
	return []string{RoleAdmin, RoleHR}
}
