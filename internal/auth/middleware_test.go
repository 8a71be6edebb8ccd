package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchday-backend/internal/httpapi"
	"matchday-backend/internal/models"
)

func testRouter(issuer *TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Middleware(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": httpapi.UserID(c),
			"role":   httpapi.UserRole(c),
		})
	})
	r.GET("/admin", Middleware(issuer), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware(t *testing.T) {
	issuer := NewTokenIssuer(testConfig())
	r := testRouter(issuer)

	t.Run("no header", func(t *testing.T) {
		w := do(r, "/protected", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_AUTHENTICATED")
	})

	t.Run("malformed token", func(t *testing.T) {
		w := do(r, "/protected", "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		u := testUser()
		pair, err := issuer.Issue(u)
		require.NoError(t, err)

		w := do(r, "/protected", pair.AccessToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), u.ID.String())
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		pair, err := issuer.Issue(testUser())
		require.NoError(t, err)

		w := do(r, "/protected", pair.RefreshToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	issuer := NewTokenIssuer(testConfig())
	r := testRouter(issuer)

	t.Run("regular user is rejected", func(t *testing.T) {
		pair, err := issuer.Issue(testUser())
		require.NoError(t, err)

		w := do(r, "/admin", pair.AccessToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ADMIN_ONLY")
	})

	t.Run("admin passes", func(t *testing.T) {
		u := testUser()
		u.Role = models.RoleAdmin
		pair, err := issuer.Issue(u)
		require.NoError(t, err)

		w := do(r, "/admin", pair.AccessToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
