package webproxy

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"atas-gateway/internal/audit"
	"atas-gateway/internal/routes"
	"atas-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler serves page navigations: it re-checks the session against the shared
// route table, then forwards to the upstream application.
//
// The edge middleware already ran for every request that reaches this handler.
// The second check is deliberate defense-in-depth, not duplication: the edge
// layer only decodes the cookie, while by the time a page is served the session
// store has re-validated the token with the backend. A stale cookie passes the
// edge and is caught here.
type Handler struct {
	sessions *session.Manager
	auditor  *audit.Service
	log      *slog.Logger
	proxy    *httputil.ReverseProxy
}

func New(appOrigin *url.URL, sessions *session.Manager, auditor *audit.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		sessions: sessions,
		auditor:  auditor,
		log:      log,
		proxy:    httputil.NewSingleHostReverseProxy(appOrigin),
	}
}

// Serve applies the client-layer guard and proxies the navigation upstream.
func (h *Handler) Serve(c *gin.Context) {
	path := c.Request.URL.Path
	class := routes.Classify(path)

	if class.RequiresSession() {
		sid := session.ID(c)
		st := h.sessions.Store(sid)
		// The one asynchronous suspension point: no role decision is made
		// below until the store has settled.
		st.Init(c.Request.Context())

		user, ok := st.User()
		if !ok {
			// The cookie got past the edge but the backend rejected it.
			session.ClearAuthCookie(c)
			c.Redirect(http.StatusTemporaryRedirect, routes.LoginPath)
			c.Abort()
			return
		}
		if !routes.CanAccess(path, user.AccessLevel) {
			target := routes.Home(user.AccessLevel)
			if err := h.auditor.LogAccessDenied(c.Request.Context(), sid, user.AccessLevel, path, target, c.ClientIP()); err != nil {
				h.log.Warn("audit append failed", "err", err)
			}
			c.Redirect(http.StatusTemporaryRedirect, target)
			c.Abort()
			return
		}
	}

	h.proxy.ServeHTTP(c.Writer, c.Request)
}
