package middleware

import (
	"context"
	"net/http"
	"strings"

	"luma-service/internal/dto"
	"luma-service/internal/models"
	"luma-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys for user info
const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

// AuthRequired validates the Bearer token and injects user info into the gin
// context. Requests without a valid token are rejected.
func AuthRequired(auth *service.AuthService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, auth, log)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid or missing token"))
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, models.Role(claims.Role))
		c.Next()
	}
}

// AuthOptional authenticates when a token is present but lets anonymous
// requests through. Used by the public tracking route, where identity only
// widens disclosure.
func AuthOptional(auth *service.AuthService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, ok := authenticate(c, auth, log); ok {
				c.Set(CtxUserID, claims.UserID)
				c.Set(CtxUserRole, models.Role(claims.Role))
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, auth *service.AuthService, log *zap.Logger) (*service.Claims, bool) {
	authz := c.GetHeader("Authorization")
	if authz == "" {
		return nil, false
	}
	token, ok := ExtractBearerToken(authz)
	if !ok || token == "" {
		return nil, false
	}
	claims, err := auth.ValidateAccess(c.Request.Context(), token)
	if err != nil {
		log.Warn("token validation failed", zap.Error(err))
		return nil, false
	}
	return claims, true
}

// ExtractBearerToken pulls the token out of the Authorization header,
// tolerating surrounding quotes and trailing junk.
func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.Trim(strings.TrimSpace(parts[1]), " \"'")
	if i := strings.IndexRune(t, ','); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.Trim(t, " \"'")
	if i := strings.IndexByte(t, ' '); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return strings.Trim(t, " \"'"), true
}

// CallerContext transfers the authenticated identity from the gin context
// into the service-layer context values. Anonymous requests pass through
// unchanged.
func CallerContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if v, ok := c.Get(CtxUserID); ok {
		if uid, ok := v.(uuid.UUID); ok {
			ctx = service.WithUserID(ctx, uid)
		}
	}
	if v, ok := c.Get(CtxUserRole); ok {
		if role, ok := v.(models.Role); ok {
			ctx = service.WithRole(ctx, role)
		}
	}
	return ctx
}
