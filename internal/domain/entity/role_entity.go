package entity

// RoleUser is the only authority a customer holds.
// Every authenticated customer carries it, there is no role table.
const RoleUser = "ROLE_USER"

// DefaultRoles returns a fresh slice so callers may not alias each other.
func DefaultRoles() []string {
	return []string{RoleUser}
}
