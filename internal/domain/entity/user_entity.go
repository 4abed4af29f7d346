package entity

import "time"

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt digests in PasswordHash.
//
// While an account is pending verification both OTP fields are set;
// once verified both are nil. The two are never set independently.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	OTPCode      *string
	OTPExpiresAt *time.Time
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Pending reports whether the account still awaits OTP verification.
func (u *User) Pending() bool {
	return !u.IsVerified
}
