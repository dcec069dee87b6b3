package domain

import "time"

// User is the credential record for one marketplace account.
type User struct {
	ID               string
	Email            string
	Name             string
	PasswordHash     string
	Role             Role
	ProfileCompleted bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
