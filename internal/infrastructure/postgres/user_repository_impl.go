package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizforge/quiz-api/internal/domain/entity"
	"github.com/quizforge/quiz-api/internal/domain/repository"
)

// UserRepository implements repository.UserDirectory on Postgres.
// Every mutation is a single conditional statement carrying its full
// precondition, so concurrent calls for the same email serialize on the
// row and cannot break the OTP pairing invariant. The schema additionally
// enforces the pairing with a CHECK constraint.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, otp_code, otp_expires_at, is_verified, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.OTPCode, &u.OTPExpiresAt,
		&u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) CreatePending(ctx context.Context, email, passwordHash, otpCode string, otpExpiresAt time.Time) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, otp_code, otp_expires_at, is_verified)
		VALUES ($1, $2, $3, $4, FALSE)
		ON CONFLICT (email) DO NOTHING
		RETURNING `+userColumns+`
	`, email, passwordHash, otpCode, otpExpiresAt)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) UpdatePendingCredentials(ctx context.Context, email, passwordHash, otpCode string, otpExpiresAt time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, otp_code = $3, otp_expires_at = $4, updated_at = now()
		WHERE email = $1 AND is_verified = FALSE
	`, email, passwordHash, otpCode, otpExpiresAt)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return r.pendingMissReason(ctx, email)
	}
	return nil
}

func (r *UserRepository) UpdateOTP(ctx context.Context, email, otpCode string, otpExpiresAt time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET otp_code = $2, otp_expires_at = $3, updated_at = now()
		WHERE email = $1 AND is_verified = FALSE
	`, email, otpCode, otpExpiresAt)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return r.pendingMissReason(ctx, email)
	}
	return nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, email, otpCode string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET is_verified = TRUE, otp_code = NULL, otp_expires_at = NULL, updated_at = now()
		WHERE email = $1 AND is_verified = FALSE AND otp_code = $2 AND otp_expires_at > now()
	`, email, otpCode)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return r.verifyMissReason(ctx, email, otpCode)
	}
	return nil
}

// verifyMissReason classifies why the conditional verify matched zero rows.
// The requery races against further writes, but every answer it can give is
// a failure, so the worst case is reporting a slightly stale failure reason.
func (r *UserRepository) verifyMissReason(ctx context.Context, email, otpCode string) error {
	var verified bool
	var code *string
	err := r.pool.QueryRow(ctx, `SELECT is_verified, otp_code FROM users WHERE email = $1`, email).
		Scan(&verified, &code)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}
	if verified {
		return repository.ErrAlreadyVerified
	}
	if code == nil || *code != otpCode {
		return repository.ErrOTPMismatch
	}
	return repository.ErrOTPExpired
}

// pendingMissReason distinguishes a missing record from an already-verified
// one after a pending-only update matched zero rows.
func (r *UserRepository) pendingMissReason(ctx context.Context, email string) error {
	var verified bool
	err := r.pool.QueryRow(ctx, `SELECT is_verified FROM users WHERE email = $1`, email).Scan(&verified)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}
	if verified {
		return repository.ErrAlreadyVerified
	}
	return repository.ErrNotFound
}

var _ repository.UserDirectory = (*UserRepository)(nil)
