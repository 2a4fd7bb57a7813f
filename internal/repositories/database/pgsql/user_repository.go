package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/primex-app/primex_backend/internal/apperrors"
	"github.com/primex-app/primex_backend/internal/core/domain"
	portsrepo "github.com/primex-app/primex_backend/internal/core/ports/repositories"
	"github.com/primex-app/primex_backend/internal/models"
)

const uniqueViolationCode = "23505"

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	return domain.User{
		ID:                 m.ID,
		Name:               m.Name,
		Email:              m.Email,
		Username:           m.Username,
		PasswordHash:       m.PasswordHash,
		ProfileURL:         m.ProfileURL,
		IsActive:           m.IsActive,
		ResetCode:          m.ResetCode,
		ResetCodeExpiresAt: m.ResetCodeExpiresAt,
		CreatedAt:          m.CreatedAt,
	}
}

const userColumns = `id, name, email, username, password_hash, profile_url, is_active, reset_code, reset_code_expires_at, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Email,
		&m.Username,
		&m.PasswordHash,
		&m.ProfileURL,
		&m.IsActive,
		&m.ResetCode,
		&m.ResetCodeExpiresAt,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func (r *PgxUserRepository) findUserBy(ctx context.Context, column string, value any) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1;`, userColumns, column)
	m, err := scanUser(r.Pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by %s: %w", column, err)
	}
	d := toDomainUser(*m)
	return &d, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.findUserBy(ctx, "id", userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUserBy(ctx, "email", email)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUserBy(ctx, "username", username)
}

// SaveUser inserts a user row outside any transaction. Used by the Google
// sign-in path, which has no OTP to consume.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (int64, error) {
	query := `
        INSERT INTO users (name, email, username, password_hash, profile_url, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id;
    `
	var id int64
	err := r.Pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.ProfileURL,
		user.IsActive,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrDuplicate
		}
		return 0, fmt.Errorf("failed to save user: %w", err)
	}
	return id, nil
}

// CreateVerifiedUser inserts the new user and deletes the consumed
// registration OTP in a single transaction, so a user row never exists while
// its OTP is still live. The unique indexes on username and email are the
// backstop against concurrent registrations passing the pre-check.
func (r *PgxUserRepository) CreateVerifiedUser(ctx context.Context, user domain.User) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2);`,
		user.Username, user.Email,
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	if exists {
		return 0, apperrors.ErrDuplicate
	}

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO users (name, email, username, password_hash, is_active)
         VALUES ($1, $2, $3, $4, FALSE)
         RETURNING id;`,
		user.Name, user.Email, user.Username, user.PasswordHash,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrDuplicate
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM registration_otps WHERE email = $1;`, user.Email); err != nil {
		return 0, fmt.Errorf("failed to consume registration otp: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PgxUserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE users SET is_active = $1 WHERE id = $2;`, active, userID)
	if err != nil {
		return fmt.Errorf("failed to update activity flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateProfileURL(ctx context.Context, userID int64, profileURL string) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE users SET profile_url = $1 WHERE id = $2;`, profileURL, userID)
	if err != nil {
		return fmt.Errorf("failed to update profile url: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) SetResetCode(ctx context.Context, email string, code string, expiresAt time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE users SET reset_code = $1, reset_code_expires_at = $2 WHERE email = $3;`,
		code, expiresAt, email,
	)
	if err != nil {
		return fmt.Errorf("failed to set reset code: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) ReplacePassword(ctx context.Context, email string, passwordHash string) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, reset_code = NULL, reset_code_expires_at = NULL WHERE email = $2;`,
		passwordHash, email,
	)
	if err != nil {
		return fmt.Errorf("failed to replace password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteUser removes the user row and reports the profile asset reference it
// held. Asset cleanup is the caller's concern and must happen only after the
// delete has committed.
func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID int64) (*string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var profileURL *string
	err = tx.QueryRow(ctx, `SELECT profile_url FROM users WHERE id = $1;`, userID).Scan(&profileURL)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to read profile url before delete: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return profileURL, nil
}
