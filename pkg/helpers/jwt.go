package helpers

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type claim values. A refresh token must never pass where an access
// token is expected, and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTManager issues and verifies the access/refresh token pair.
// Access and refresh tokens are signed with distinct secrets and carry a
// type claim, so neither can be replayed as the other.
type JWTManager struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	Audience      string
}

// Claims is the payload carried by both token kinds.
type Claims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

func NewJWTManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, issuer, audience string) *JWTManager {
	return &JWTManager{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		Issuer:        issuer,
		Audience:      audience,
	}
}

func (m *JWTManager) GenerateAccessToken(userID, email string) (string, time.Time, error) {
	return m.generate(userID, email, TokenTypeAccess, m.AccessTTL, m.AccessSecret)
}

func (m *JWTManager) GenerateRefreshToken(userID, email string) (string, time.Time, error) {
	return m.generate(userID, email, TokenTypeRefresh, m.RefreshTTL, m.RefreshSecret)
}

func (m *JWTManager) generate(userID, email, typ string, ttl time.Duration, secret []byte) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := &Claims{
		UserID:    userID,
		Email:     email,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps every issuance unique; iat/exp alone have second
			// precision, which would make back-to-back tokens identical and
			// defeat refresh rotation.
			ID:        uuid.NewString(),
			Issuer:    m.Issuer,
			Audience:  jwt.ClaimStrings{m.Audience},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(secret)
	return s, exp, err
}

// ParseAccessToken verifies signature, expiry and the access type claim.
func (m *JWTManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, m.AccessSecret, TokenTypeAccess)
}

// ParseRefreshToken verifies signature, expiry and the refresh type claim.
func (m *JWTManager) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, m.RefreshSecret, TokenTypeRefresh)
}

func (m *JWTManager) parse(tokenStr string, secret []byte, wantType string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithIssuer(m.Issuer), jwt.WithAudience(m.Audience), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !tkn.Valid || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractBearerToken parses an Authorization header of the form
// "Bearer <token>". It returns "" for missing or malformed headers.
func ExtractBearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
