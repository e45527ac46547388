package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rizkypratama/survey-api/internal/domain/entity"
)

// Storage-level sentinels. Implementations translate driver errors into
// these so services never see driver internals.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines user persistence. Lookups by email expect the
// caller to have normalized the address already.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateRefreshToken stores (or clears, when nil) the user's currently
	// valid refresh token.
	UpdateRefreshToken(ctx context.Context, id string, token *string, exp *time.Time) error
	// Counts reports total and active user counts for the admin summary.
	Counts(ctx context.Context) (total int, active int, err error)
}
