package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/primex-app/primex_backend/internal/apperrors"
	"github.com/primex-app/primex_backend/internal/core/domain"
	portsrepo "github.com/primex-app/primex_backend/internal/core/ports/repositories"
	"github.com/primex-app/primex_backend/internal/models"
)

type PgxRegistrationOTPRepository struct {
	BaseRepository
}

func newPgxRegistrationOTPRepository(pool *pgxpool.Pool) portsrepo.RegistrationOTPRepository {
	return &PgxRegistrationOTPRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RegistrationOTPRepository = (*PgxRegistrationOTPRepository)(nil)

func (r *PgxRegistrationOTPRepository) UpsertRegistrationOTP(ctx context.Context, email string, code string) error {
	query := `
        INSERT INTO registration_otps (email, code, issued_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (email) DO UPDATE SET
            code = EXCLUDED.code,
            issued_at = EXCLUDED.issued_at;
    `
	_, err := r.Pool.Exec(ctx, query, email, code, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert registration otp: %w", err)
	}
	return nil
}

func (r *PgxRegistrationOTPRepository) FindRegistrationOTP(ctx context.Context, email string) (*domain.RegistrationOTP, error) {
	query := `SELECT email, code, issued_at FROM registration_otps WHERE email = $1;`
	var m models.RegistrationOTP
	err := r.Pool.QueryRow(ctx, query, email).Scan(&m.Email, &m.Code, &m.IssuedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find registration otp: %w", err)
	}
	return &domain.RegistrationOTP{Email: m.Email, Code: m.Code, IssuedAt: m.IssuedAt}, nil
}
