package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/config"
	"github.com/wapsender/totalshophn/internal/domain"
	"github.com/wapsender/totalshophn/internal/repository"
	"github.com/wapsender/totalshophn/internal/repository/memory"
)

const testSecret = "test-secret"

func testConfig(serviceKeyHash string) *config.Config {
	return &config.Config{
		Environment: "test",
		Auth: config.AuthConfig{
			JWTSecret:      testSecret,
			ServiceKeyHash: serviceKeyHash,
		},
	}
}

func mintToken(t *testing.T, uid, email, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func authTestRouter(cfg *config.Config, repos *repository.Repositories, mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", mw, func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"uid": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": user.UID, "role": user.Role})
	})
	return router
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	repos := memory.NewRepositories(zap.NewNop())
	cfg := testConfig("")
	router := authTestRouter(cfg, repos, AuthMiddleware(cfg, repos, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "uid-1", "ana@mail.com", "reseller"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uid-1")

	// First authenticated request upserted the local profile
	user, err := repos.User.GetByUID(req.Context(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleReseller, user.Role)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	repos := memory.NewRepositories(zap.NewNop())
	cfg := testConfig("")
	router := authTestRouter(cfg, repos, AuthMiddleware(cfg, repos, zap.NewNop()))

	for _, header := range []string{"", "Bearer not-a-token", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	repos := memory.NewRepositories(zap.NewNop())
	cfg := testConfig("")
	router := authTestRouter(cfg, repos, AuthMiddleware(cfg, repos, zap.NewNop()))

	claims := jwt.MapClaims{"sub": "uid-1", "email": "a@b.c", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareUnknownRoleDefaultsToCustomer(t *testing.T) {
	repos := memory.NewRepositories(zap.NewNop())
	cfg := testConfig("")
	router := authTestRouter(cfg, repos, AuthMiddleware(cfg, repos, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "uid-2", "b@mail.com", "superuser"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	user, err := repos.User.GetByUID(req.Context(), "uid-2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
}

func TestOptionalAuthLetsGuestsThrough(t *testing.T) {
	repos := memory.NewRepositories(zap.NewNop())
	cfg := testConfig("")
	router := authTestRouter(cfg, repos, OptionalAuthMiddleware(cfg, repos, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddlewareServiceKey(t *testing.T) {
	repos := memory.NewRepositories(zap.NewNop())

	hash, err := HashServiceKey("sk_test_key")
	require.NoError(t, err)
	cfg := testConfig(hash)
	router := authTestRouter(cfg, repos, AdminMiddleware(cfg, repos, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer sk_test_key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer sk_wrong_key")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddlewareRequiresAdminRole(t *testing.T) {
	repos := memory.NewRepositories(zap.NewNop())
	cfg := testConfig("")
	router := authTestRouter(cfg, repos, AdminMiddleware(cfg, repos, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "uid-3", "c@mail.com", "customer"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "uid-4", "d@mail.com", "admin"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyServiceKey(t *testing.T) {
	hash, err := HashServiceKey("my-key")
	require.NoError(t, err)
	assert.True(t, VerifyServiceKey("my-key", hash))
	assert.False(t, VerifyServiceKey("other", hash))
}
