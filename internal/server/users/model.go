package users

import "time"

// User is a stored account. ResetToken and ResetExpiresAt are both nil or
// both set; a pending reset is the only state in which they are populated.
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	ResetToken     *string
	ResetExpiresAt *time.Time
	CreatedAt      time.Time
}

// Account is the public projection of a user used by listings. The password
// hash and reset state never leave the repository through it.
type Account struct {
	ID    string
	Email string
}
