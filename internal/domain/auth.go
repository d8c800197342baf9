package domain

import "time"

// Token represents issued authentication token metadata.
type Token struct {
	ID        string
	Username  string
	Role      Role
	ExpiresAt time.Time
	IssuedAt  time.Time
}
