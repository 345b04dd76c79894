package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/political-canvas/canvass-api/internal/authz"
	"github.com/political-canvas/canvass-api/internal/constants"
	apierrors "github.com/political-canvas/canvass-api/internal/errors"
	"github.com/political-canvas/canvass-api/internal/models"
)

// RequireAuth authenticates the request with the bearer token, falling back to
// the token held in the session cookie.
func RequireAuth(guard *authz.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = sessionToken(c)
		}

		identity, err := guard.Authenticate(token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or missing token")
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, identity.UserID)
		c.Set(constants.ContextKeyRole, identity.Role)
		c.Next()
	}
}

// RequireCapability rejects callers whose role does not hold c. It must run
// after RequireAuth.
func RequireCapability(capability authz.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		if err := authz.Require(identity, capability); err != nil {
			if errors.Is(err, authz.ErrUnauthenticated) {
				apierrors.Unauthorized(c, "")
				return
			}
			apierrors.Forbidden(c, err.Error())
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetIdentity retrieves the authenticated caller from context
func GetIdentity(c *gin.Context) (authz.Identity, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return authz.Identity{}, false
	}

	role, ok := c.Get(constants.ContextKeyRole)
	if !ok {
		return authz.Identity{}, false
	}
	r, ok := role.(models.Role)
	if !ok {
		return authz.Identity{}, false
	}

	return authz.Identity{UserID: userID, Role: r}, true
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func sessionToken(c *gin.Context) string {
	session := sessions.Default(c)
	token, _ := session.Get(constants.SessionKeyToken).(string)
	return token
}
