package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// AuthCookieName mirrors the persisted token for the edge layer. The backend
	// never sees this cookie; API calls carry the bearer header instead.
	AuthCookieName = "auth_token"

	// IDCookieName identifies a gateway session across navigations.
	IDCookieName = "atas_sid"
)

// TokenTTL bounds both the auth cookie and the persisted credentials.
const TokenTTL = 24 * time.Hour

// SetAuthCookie writes the session token cookie: path /, 24-hour max-age,
// strict same-site.
func SetAuthCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL / time.Second),
		SameSite: http.SameSiteStrictMode,
		HttpOnly: true,
	})
}

// ClearAuthCookie expires the session token cookie.
func ClearAuthCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteStrictMode,
		HttpOnly: true,
	})
}

// AuthToken reads the raw session token from the request, "" when absent.
func AuthToken(c *gin.Context) string {
	v, err := c.Cookie(AuthCookieName)
	if err != nil {
		return ""
	}
	return v
}

const ctxSessionID = "session_id"

// EnsureID issues a gateway session ID cookie when the browser does not carry
// one yet, and stashes the ID on the request context.
func EnsureID() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(IDCookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     IDCookieName,
				Value:    sid,
				Path:     "/",
				SameSite: http.SameSiteStrictMode,
				HttpOnly: true,
			})
		}
		c.Set(ctxSessionID, sid)
		c.Next()
	}
}

// ID returns the gateway session ID for this request.
func ID(c *gin.Context) string {
	if v, ok := c.Get(ctxSessionID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
