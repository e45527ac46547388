package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rizkypratama/survey-api/pkg/helpers"
)

// Redirect targets for the dashboard gate.
const (
	LoginPage     = "/auth/login"
	ForbiddenPage = "/forbidden"
)

// GateConfig configures DashboardGate.
type GateConfig struct {
	// VerifyURL is the auth verify endpoint consulted for each gated
	// request. The gate and the auth service may run in different
	// processes, so verification goes over HTTP rather than in-process.
	VerifyURL string
	// Prefixes are the protected path prefixes, e.g. /dashboard.
	Prefixes []string
	// Client performs the verification call; it must carry a timeout.
	Client *http.Client
}

type verifyResult struct {
	Success bool `json:"success"`
	Valid   bool `json:"valid"`
}

// DashboardGate protects dashboard pages before they reach the app.
// It reads the access token from the cookie (this runs pre-route, ahead of
// any Authorization header handling) and fails closed: no cookie, a dead
// verify endpoint, or an invalid token all deny access.
func DashboardGate(cfg GateConfig) gin.HandlerFunc {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return func(c *gin.Context) {
		if !pathProtected(c.Request.URL.Path, cfg.Prefixes) {
			c.Next()
			return
		}

		token, err := c.Cookie(helpers.AccessTokenCookie)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, LoginPage)
			c.Abort()
			return
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, cfg.VerifyURL, nil)
		if err != nil {
			c.Redirect(http.StatusFound, LoginPage)
			c.Abort()
			return
		}
		req.Header.Set("Authorization", "Bearer "+token)

		res, err := client.Do(req)
		if err != nil {
			// network failure: fail closed
			c.Redirect(http.StatusFound, LoginPage)
			c.Abort()
			return
		}
		defer func() { _ = res.Body.Close() }()

		if res.StatusCode != http.StatusOK {
			c.Redirect(http.StatusFound, ForbiddenPage)
			c.Abort()
			return
		}

		var out verifyResult
		if err := json.NewDecoder(res.Body).Decode(&out); err != nil || !out.Valid || !out.Success {
			c.Redirect(http.StatusFound, LoginPage)
			c.Abort()
			return
		}

		c.Next()
	}
}

func pathProtected(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
