package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rizkypratama/survey-api/internal/domain/entity"
	"github.com/rizkypratama/survey-api/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name, u.IsActive)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.get(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) get(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, is_active,
		       refresh_token, refresh_token_exp, created_at, updated_at
		FROM users
	`+where, arg)

	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.IsActive,
		&u.RefreshToken, &u.RefreshTokenExp, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id string, token *string, exp *time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET refresh_token = $1, refresh_token_exp = $2, updated_at = now()
		WHERE id = $3
	`, token, exp, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Counts(ctx context.Context) (int, int, error) {
	var total, active int
	row := r.pool.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE is_active)
		FROM users
	`)
	if err := row.Scan(&total, &active); err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
