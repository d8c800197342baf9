package domain

// Role is the fixed access level carried by every account.
type Role string

const (
	RoleUser    Role = "user"
	RoleSupport Role = "support"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleSupport
}

// User is an account able to sign in. Accounts are never updated or deleted.
type User struct {
	Username     string
	PasswordHash string
	Role         Role
}
