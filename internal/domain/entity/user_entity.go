package entity

import (
	"time"
)

// User is the identity record behind every survey account.
// Password holds a bcrypt hash and must never be serialized into a
// response or token payload. Email is stored normalized (trimmed,
// lower-cased), so uniqueness is case-insensitive.
//
// RefreshToken/RefreshTokenExp track the currently valid refresh token:
// refresh rotates it, logout clears it. Nil means no active refresh token.
type User struct {
	ID              string
	Email           string
	Password        string
	Name            string
	IsActive        bool
	RefreshToken    *string
	RefreshTokenExp *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
