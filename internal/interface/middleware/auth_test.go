package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizkypratama/survey-api/internal/application"
	"github.com/rizkypratama/survey-api/internal/domain/entity"
	"github.com/rizkypratama/survey-api/internal/domain/repository"
	"github.com/rizkypratama/survey-api/pkg/helpers"
)

// stubUserRepo serves a single fixed user.
type stubUserRepo struct {
	user *entity.User
}

func (s *stubUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) UpdateRefreshToken(ctx context.Context, id string, token *string, exp *time.Time) error {
	return nil
}

func (s *stubUserRepo) Counts(ctx context.Context) (int, int, error) { return 0, 0, nil }

func newAuthFixture() (*application.AuthService, *helpers.JWTManager) {
	jwt := helpers.NewJWTManager(
		"test-access", "test-refresh",
		15*time.Minute, 7*24*time.Hour,
		"survey-website", "survey-website-users",
	)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	repo := &stubUserRepo{user: &entity.User{ID: "u-1", Email: "alice@example.com", IsActive: true}}
	return application.NewAuthService(repo, jwt, logger, nil), jwt
}

func authRouter(svc *application.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(svc), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	return r
}

func protectedGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingHeader(t *testing.T) {
	svc, _ := newAuthFixture()
	w := protectedGet(authRouter(svc), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	svc, _ := newAuthFixture()
	for _, header := range []string{"tok", "Basic tok", "Bearer"} {
		w := protectedGet(authRouter(svc), header)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid authorization header format")
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	svc, _ := newAuthFixture()
	w := protectedGet(authRouter(svc), "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestRequireAuthValidToken(t *testing.T) {
	svc, jwt := newAuthFixture()
	token, _, err := jwt.GenerateAccessToken("u-1", "alice@example.com")
	require.NoError(t, err)

	w := protectedGet(authRouter(svc), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", w.Body.String())
}

func TestRequireAuthUnknownUser(t *testing.T) {
	svc, jwt := newAuthFixture()
	token, _, err := jwt.GenerateAccessToken("ghost", "ghost@example.com")
	require.NoError(t, err)

	w := protectedGet(authRouter(svc), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}
