package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskmate/internal/models"
	"taskmate/internal/services"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"

	currentUserKey = "current_user"
)

// 401 codes returned by the session gate.
const (
	CodeNoToken      = "NO_TOKEN"
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
	CodeUserNotFound = "USER_NOT_FOUND"
)

// Authenticator resolves the user behind an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
}

// AuthMiddleware is a pure gate: it never refreshes. An expired access token
// is reported as TOKEN_EXPIRED so the client can refresh once and retry.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// пропускаем preflight
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token := accessToken(c)
		if token == "" {
			unauthorized(c, CodeNoToken, "Not authorized, no token")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrTokenExpired):
			unauthorized(c, CodeTokenExpired, "Not authorized, token expired")
			return
		case errors.Is(err, services.ErrUserNotFound):
			unauthorized(c, CodeUserNotFound, "User not found")
			return
		case errors.Is(err, services.ErrTokenInvalid):
			unauthorized(c, CodeTokenInvalid, "Not authorized, token failed")
			return
		default:
			log.Printf("[auth][gate][err] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to authenticate"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// accessToken reads the cookie first, then an Authorization: Bearer header.
func accessToken(c *gin.Context) string {
	if v, err := c.Cookie(AccessCookie); err == nil && v != "" {
		return v
	}
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
		"code":    code,
	})
}

// CurrentUser returns the user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

// SetCurrentUser is used by handler tests that bypass the gate.
func SetCurrentUser(c *gin.Context, u *models.User) {
	c.Set(currentUserKey, u)
}
