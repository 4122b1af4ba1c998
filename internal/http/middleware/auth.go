package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"aydamarket.com/api/internal/auth"
	"aydamarket.com/api/internal/shared/apperr"
)

const ctxKeyUser = "current_user"

// ContextUser is the authenticated caller, taken from the verified bearer
// token.
type ContextUser struct {
	ID       string
	Role     string
	Username string
	Email    string
}

// BearerAuth verifies the Authorization header when present and stores the
// caller in the context. Missing or bad tokens leave the request anonymous;
// RequireAuth or RequireAdmin then reject it where it matters.
func BearerAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			c.Next()
			return
		}
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ctxKeyUser, ContextUser{
			ID:       claims.UserID,
			Role:     claims.Role,
			Username: claims.Username,
			Email:    claims.Email,
		})
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (ContextUser, bool) {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return ContextUser{}, false
	}
	u, ok := v.(ContextUser)
	if !ok || u.ID == "" {
		return ContextUser{}, false
	}
	return u, true
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			Fail(c, apperr.UnauthorizedErr("Authentication required."))
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			Fail(c, apperr.UnauthorizedErr("Authentication required."))
			return
		}
		if u.Role != "admin" {
			Fail(c, apperr.ForbiddenErr("Admin access required."))
			return
		}
		c.Next()
	}
}
