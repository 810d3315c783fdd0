package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wapsender/totalshophn/internal/config"
	"github.com/wapsender/totalshophn/internal/domain"
	"github.com/wapsender/totalshophn/internal/repository"
)

const UserContextKey = "user"

// sessionClaims are the claims the identity provider puts in session tokens
type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// resolveUser verifies a session token and upserts the profile. Sign-up and
// sign-in live in the identity provider; the first request with a fresh token
// is what creates (or re-syncs) the local profile.
func resolveUser(c *gin.Context, cfg *config.Config, repos *repository.Repositories, logger *zap.Logger, token string) (*domain.UserProfile, bool) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.Auth.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		logger.Warn("Failed to verify session token", zap.Error(err))
		return nil, false
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, false
	}

	role := domain.UserRole(claims.Role)
	if !role.IsValid() {
		role = domain.RoleCustomer
	}
	user, err := repos.User.RegisterOrSync(c.Request.Context(), claims.Subject, claims.Email, role)
	if err != nil {
		logger.Error("Failed to sync user profile", zap.Error(err))
		return nil, false
	}
	return user, true
}

// AuthMiddleware authenticates requests using an identity-provider session token
func AuthMiddleware(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			c.Abort()
			return
		}
		user, ok := resolveUser(c, cfg, repos, logger, token)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			c.Abort()
			return
		}
		c.Set(UserContextKey, user)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves a user when a valid token is present but
// lets guests through. Cart and catalog routes serve both.
func OptionalAuthMiddleware(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, ok := resolveUser(c, cfg, repos, logger, token); ok {
				c.Set(UserContextKey, user)
			}
		}
		c.Next()
	}
}

// AdminMiddleware allows admins through: either an authenticated profile with
// the admin role, or back-office tooling presenting the service key (verified
// against its bcrypt hash, see cmd/genkey).
func AdminMiddleware(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			c.Abort()
			return
		}

		if cfg.Auth.ServiceKeyHash != "" && VerifyServiceKey(token, cfg.Auth.ServiceKeyHash) {
			c.Next()
			return
		}

		user, ok := resolveUser(c, cfg, repos, logger, token)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			c.Abort()
			return
		}
		if user.Role != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Set(UserContextKey, user)
		c.Next()
	}
}

// GetUserFromContext retrieves the user profile from the Gin context
func GetUserFromContext(c *gin.Context) (*domain.UserProfile, bool) {
	user, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}
	u, ok := user.(*domain.UserProfile)
	return u, ok
}

// HashServiceKey hashes a service key using bcrypt
func HashServiceKey(key string) (string, error) {
	// Cost of 10 is enough for service keys (faster than passwords)
	hash, err := bcrypt.GenerateFromPassword([]byte(key), 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyServiceKey verifies a service key against a bcrypt hash
func VerifyServiceKey(key, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
