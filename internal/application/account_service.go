package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quizforge/quiz-api/internal/domain/entity"
	"github.com/quizforge/quiz-api/internal/domain/repository"
	"github.com/quizforge/quiz-api/pkg/helpers"
	"github.com/quizforge/quiz-api/pkg/mailer"
)

var (
	ErrAlreadyRegistered  = errors.New("email already registered")
	ErrNotFound           = errors.New("account not found")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrOTPExpired         = errors.New("otp expired")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account not verified")
	ErrDeliveryFailed     = errors.New("otp delivery failed")
)

// OTPSource produces a one-time passcode together with its expiry instant.
type OTPSource interface {
	Generate() (string, time.Time, error)
}

// AccountService owns the Pending -> Verified account state machine.
// All record mutations go through the UserDirectory, whose writes are
// atomic per email, so the service itself holds no locks.
type AccountService struct {
	Users  repository.UserDirectory
	OTP    OTPSource
	Sender mailer.Sender
	Tokens *helpers.TokenIssuer
	Logger *logrus.Logger
}

func NewAccountService(users repository.UserDirectory, otp OTPSource, sender mailer.Sender, tokens *helpers.TokenIssuer, logger *logrus.Logger) *AccountService {
	return &AccountService{Users: users, OTP: otp, Sender: sender, Tokens: tokens, Logger: logger}
}

// Register creates a pending account and sends it the verification code.
// Re-registering a still-unverified email overwrites the password and
// resets the OTP, even when the previous code has not yet expired;
// re-registering a verified email is rejected.
func (s *AccountService) Register(ctx context.Context, email, password string) error {
	existing, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.IsVerified {
		return ErrAlreadyRegistered
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	code, expiresAt, err := s.OTP.Generate()
	if err != nil {
		return err
	}

	if existing == nil {
		_, err = s.Users.CreatePending(ctx, email, hash, code, expiresAt)
		if errors.Is(err, repository.ErrConflict) {
			// Lost the insert race; fall through to the retry path.
			err = s.Users.UpdatePendingCredentials(ctx, email, hash, code, expiresAt)
		}
	} else {
		err = s.Users.UpdatePendingCredentials(ctx, email, hash, code, expiresAt)
	}
	if errors.Is(err, repository.ErrAlreadyVerified) {
		return ErrAlreadyRegistered
	}
	if err != nil {
		return err
	}

	return s.deliver(ctx, email, code, expiresAt)
}

// VerifyOTP transitions a pending account to verified when the code matches
// and has not expired. The check and the flip are one conditional directory
// write, so a code replaced mid-flight by Register or ResendOTP is rejected
// and a second concurrent verify reports ErrAlreadyVerified. The record is
// untouched on every failure path.
func (s *AccountService) VerifyOTP(ctx context.Context, email, code string) error {
	err := s.Users.MarkVerified(ctx, email, code)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrAlreadyVerified):
		return ErrAlreadyVerified
	case errors.Is(err, repository.ErrOTPMismatch):
		return ErrInvalidOTP
	case errors.Is(err, repository.ErrOTPExpired):
		return ErrOTPExpired
	}
	return err
}

// ResendOTP regenerates the code and expiry of a pending account and
// resends it, invalidating any code still in flight.
func (s *AccountService) ResendOTP(ctx context.Context, email string) error {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}

	code, expiresAt, err := s.OTP.Generate()
	if err != nil {
		return err
	}
	if err := s.Users.UpdateOTP(ctx, email, code, expiresAt); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyVerified):
			return ErrAlreadyVerified
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		}
		return err
	}

	return s.deliver(ctx, email, code, expiresAt)
}

// LoginResult carries the issued bearer token and its expiry.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Login checks the credentials of a verified account and issues a token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	if u.Pending() {
		return nil, ErrNotVerified
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token issue failed")
		}
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// deliver sends the code. The record write has already committed; a failed
// send is reported but never rolled back, ResendOTP is the recovery path.
func (s *AccountService) deliver(ctx context.Context, email, code string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if err := s.Sender.SendOTP(ctx, email, code, ttl); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Warn("otp delivery failed")
		}
		return ErrDeliveryFailed
	}
	return nil
}
