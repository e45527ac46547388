package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rizkypratama/survey-api/internal/domain/entity"
	"github.com/rizkypratama/survey-api/internal/domain/repository"
	"github.com/rizkypratama/survey-api/pkg/helpers"
	"github.com/rizkypratama/survey-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthUser is the public projection of a user record. The password hash
// and stored refresh token never leave the service.
type AuthUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TokenPair carries a freshly issued access/refresh pair with expiries.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// AuthResult is the envelope data returned by register/login/refresh.
type AuthResult struct {
	User         AuthUser `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

// Publisher is the queue side-channel for transactional emails.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService orchestrates register/login/logout/refresh/validate over the
// user store, password hasher and token issuer.
type AuthService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
	Pub    Publisher
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub Publisher) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger, Pub: pub}
}

// NormalizeEmail trims and lower-cases an address. Every comparison and
// storage key uses the normalized form, so "A@b.com" and "a@b.com" are the
// same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and issues a token pair. Duplicate emails
// fail with ErrEmailTaken, whether detected by lookup or by the store's
// unique constraint under concurrent registration.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, *TokenPair, error) {
	email = NormalizeEmail(email)

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	u := &entity.User{
		Email:    email,
		Password: hash,
		Name:     strings.TrimSpace(name),
		IsActive: true,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}

	s.queueWelcomeEmail(ctx, u)

	res := &AuthResult{User: toAuthUser(u), AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
	return res, pair, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the same error so a caller cannot probe which field
// was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, *TokenPair, error) {
	email = NormalizeEmail(email)

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		s.Logger.WithError(err).Error("login: user lookup failed")
		return nil, nil, err
	}
	if !u.IsActive {
		return nil, nil, ErrAccountDisabled
	}
	if !helpers.CheckPassword(u.Password, password) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}

	res := &AuthResult{User: toAuthUser(u), AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
	return res, pair, nil
}

// Refresh verifies a refresh token, confirms it is the one currently stored
// for the user, and rotates the pair. The previous refresh token stops
// working immediately.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, *TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	if !u.IsActive {
		return nil, nil, ErrUserNotFound
	}
	if u.RefreshToken == nil || *u.RefreshToken != refreshToken {
		return nil, nil, ErrInvalidToken
	}
	if u.RefreshTokenExp != nil && u.RefreshTokenExp.Before(time.Now()) {
		return nil, nil, ErrInvalidToken
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}

	res := &AuthResult{User: toAuthUser(u), AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
	return res, pair, nil
}

// Logout revokes the stored refresh token. Outstanding access tokens stay
// valid until natural expiry; they are stateless and cannot be recalled.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateRefreshToken(ctx, userID, nil, nil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ValidateToken verifies an access token and loads the user behind it.
// Any failure returns ErrInvalidToken; the caller only needs valid/invalid.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*AuthUser, error) {
	claims, err := s.JWT.ParseAccessToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || !u.IsActive {
		return nil, ErrInvalidToken
	}
	au := toAuthUser(u)
	return &au, nil
}

func (s *AuthService) issueTokens(ctx context.Context, u *entity.User) (*TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return nil, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return nil, err
	}

	if err := s.Repo.UpdateRefreshToken(ctx, u.ID, &refresh, &rexp); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}

func (s *AuthService) queueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"Name":    displayName(u),
			"AppName": "Survey Portal",
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("queue welcome email failed")
	}
}

func displayName(u *entity.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func toAuthUser(u *entity.User) AuthUser {
	return AuthUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
