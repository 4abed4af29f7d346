package repository

import (
	"context"
	"errors"
	"time"

	"github.com/quizforge/quiz-api/internal/domain/entity"
)

var (
	// ErrConflict is returned when a record already exists for the email.
	ErrConflict = errors.New("record already exists")
	// ErrNotFound is returned by mutations when no record exists for the email.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyVerified is returned when a pending-only mutation hits a verified record.
	ErrAlreadyVerified = errors.New("record already verified")
	// ErrOTPMismatch is returned by MarkVerified when the stored code differs.
	ErrOTPMismatch = errors.New("otp code mismatch")
	// ErrOTPExpired is returned by MarkVerified when the stored code has expired.
	ErrOTPExpired = errors.New("otp code expired")
)

// UserDirectory is the durable store of account records, keyed by email.
// Every mutation is a single atomic conditional write, so interleaved calls
// for the same email cannot leave the OTP code and expiry out of step.
type UserDirectory interface {
	// FindByEmail returns (nil, nil) when no record exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// CreatePending inserts a new unverified record; ErrConflict if any
	// record, verified or not, already exists for the email.
	CreatePending(ctx context.Context, email, passwordHash, otpCode string, otpExpiresAt time.Time) (*entity.User, error)

	// UpdatePendingCredentials overwrites the password digest and OTP fields
	// of an existing pending record.
	UpdatePendingCredentials(ctx context.Context, email, passwordHash, otpCode string, otpExpiresAt time.Time) error

	// UpdateOTP regenerates the OTP fields only, leaving the password as is.
	UpdateOTP(ctx context.Context, email, otpCode string, otpExpiresAt time.Time) error

	// MarkVerified flips the record to verified and clears both OTP fields,
	// but only when the record is still pending, otpCode matches the stored
	// code and that code has not expired. The check and the flip are one
	// atomic write, so a code replaced by a concurrent Register or ResendOTP
	// can never verify the account.
	MarkVerified(ctx context.Context, email, otpCode string) error
}
