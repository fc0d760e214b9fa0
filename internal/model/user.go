package model

import (
	"time"
)

// User is an authenticated team member. Accounts are passwordless; the only
// credential is a magic-link token sent to the team email address.
type User struct {
	ID              string     `db:"id"`
	Email           string     `db:"email"`
	EmailVerifiedAt *time.Time `db:"email_verified_at"`
	CreatedAt       time.Time  `db:"created_at"`
}
