package domain

// Role is the capability level carried by a caller.
type Role string

const (
	RoleAdmin Role = "ADMIN_ROLE"
	RoleUser  Role = "USER_ROLE"
)

// IsValid reports whether the role is one the service understands.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Caller is the authenticated identity on whose behalf an operation runs.
// It is passed explicitly to every service operation.
type Caller struct {
	OwnerID string
	Role    Role
}

// IsAdmin reports whether the caller holds the admin capability.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Owns reports whether the caller is the owner of the account.
func (c Caller) Owns(account Account) bool {
	return c.OwnerID != "" && c.OwnerID == account.OwnerID
}
