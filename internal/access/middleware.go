package access

import (
	"log/slog"
	"net/http"

	"atas-gateway/internal/audit"
	"atas-gateway/internal/routes"
	"atas-gateway/internal/session"
	"atas-gateway/internal/token"

	"github.com/gin-gonic/gin"
)

// Middleware is the edge interception layer: it evaluates the decision table
// before any page handler runs, on every navigation. It never performs I/O to
// decide; auditing happens after the decision and is best-effort.
func Middleware(log *slog.Logger, auditor *audit.Service) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		raw := session.AuthToken(c)
		claims, decodable := token.Decode(raw)

		d := Decide(path, raw)

		if d.ClearSessionCookie {
			session.ClearAuthCookie(c)
			if err := auditor.LogSessionInvalidated(c.Request.Context(), session.ID(c), path, c.ClientIP()); err != nil {
				log.Warn("audit append failed", "err", err)
			}
		}

		if d.Action == ActionRedirect {
			if decodable && routes.Classify(path).RequiresSession() {
				if err := auditor.LogAccessDenied(c.Request.Context(), session.ID(c), claims.AccessLevel, path, d.Location, c.ClientIP()); err != nil {
					log.Warn("audit append failed", "err", err)
				}
			}
			c.Redirect(http.StatusTemporaryRedirect, d.Location)
			c.Abort()
			return
		}

		// Expose the decoded role hint for request logging only; it comes from
		// an unverified token and must never gate anything.
		if decodable {
			c.Set("role_hint", claims.AccessLevel)
		}
		c.Next()
	}
}
