package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookingslots/internal/auth"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifySessionToken(token string) (*auth.Claims, error)
}

// SessionMiddleware carries the admin/visitor mode across requests via the
// gate's session token. This guards a demo UI gate, nothing more.
type SessionMiddleware struct {
	tokens TokenVerifier
}

func NewSessionMiddleware(tokens TokenVerifier) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens}
}

// Attach resolves the mode from the Authorization header when present and
// never rejects; visitors simply carry no token.
func (m *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := "visitor"

		if raw := bearerToken(c); raw != "" {
			if claims, err := m.tokens.VerifySessionToken(raw); err == nil {
				mode = claims.Mode
			}
		}

		c.Set(CtxMode, mode)
		c.Next()
	}
}

// RequireAdmin aborts unless a valid admin session token came with the
// request.
func (m *SessionMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			abortUnauthorized(c, "Missing session token")
			return
		}

		claims, err := m.tokens.VerifySessionToken(raw)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired session token")
			return
		}

		if claims.Mode != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "Admin mode required",
				},
			})
			return
		}

		c.Set(CtxMode, claims.Mode)
		c.Next()
	}
}

func ModeFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxMode)
	if !ok {
		return "", false
	}
	mode, ok := v.(string)
	return mode, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "unauthorized",
			"message": message,
		},
	})
}
