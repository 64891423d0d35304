package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobboard/internal/models/db_models"
	"jobboard/pkg/logger"
	mem "jobboard/pkg/memcache"
	"jobboard/pkg/utils"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "Role"
	contextClaims = "session_claims"
)

// Authenticator resolves the session on every request. It never rejects:
// routes opt into protection with RequireRole.
type Authenticator struct {
	tokens     *utils.TokenManager
	sessions   mem.SessionStore
	cookieName string
}

func NewAuthenticator(tokens *utils.TokenManager, sessions mem.SessionStore, cookieName string) *Authenticator {
	return &Authenticator{tokens: tokens, sessions: sessions, cookieName: cookieName}
}

func (a *Authenticator) tokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(a.cookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func (a *Authenticator) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := a.tokenFrom(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := a.tokens.ValidateSessionToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		revoked, err := a.sessions.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			logger.Warn().Err(err).Msg("session revocation lookup failed")
			c.Next()
			return
		}
		if revoked {
			c.Next()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(contextClaims, claims)
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(ContextUserID))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func CurrentClaims(c *gin.Context) *utils.Claims {
	if v, ok := c.Get(contextClaims); ok {
		claims, _ := v.(*utils.Claims)
		return claims
	}
	return nil
}

// SafeNext accepts only local absolute paths.
func SafeNext(next string) (string, bool) {
	if next == "" || !strings.HasPrefix(next, "/") ||
		strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "", false
	}
	return next, true
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}

// RequireRole admits only sessions holding role. Anonymous visitors and
// Users who lack it go to the login page. An Admin who lacks it is sent
// to ?next when given, otherwise to the admin landing.
func RequireRole(role db_models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := c.GetString(ContextRole)

		switch {
		case current == string(role):
			c.Next()
		case current == string(db_models.RoleAdmin):
			target := "/admin"
			if next, ok := SafeNext(c.Query("next")); ok && next != c.Request.URL.Path {
				target = next
			}
			c.Redirect(http.StatusFound, target)
			c.Abort()
		default:
			redirectToLogin(c)
		}
	}
}

// RedirectIfAuthenticated keeps signed-in users off the login, register and
// reset pages.
func RedirectIfAuthenticated(to string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != "" {
			c.Redirect(http.StatusFound, to)
			c.Abort()
			return
		}
		c.Next()
	}
}
