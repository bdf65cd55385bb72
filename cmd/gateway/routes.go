package main

import (
	"log/slog"
	"net/url"

	"atas-gateway/internal/access"
	"atas-gateway/internal/audit"
	"atas-gateway/internal/gateway"
	"atas-gateway/internal/httpapi"
	"atas-gateway/internal/session"
	"atas-gateway/internal/webproxy"

	"github.com/gin-gonic/gin"
)

type routeDeps struct {
	log       *slog.Logger
	appOrigin *url.URL
	sessions  *session.Manager
	api       *gateway.Client
	auditor   *audit.Service
	throttle  httpapi.Throttle
}

// registerRoutes wires the two enforcement layers around the session surface.
// Keep this file free of business logic.
func registerRoutes(r *gin.Engine, deps routeDeps) {
	// Every request gets a gateway session ID, then passes the edge layer.
	// Gateway-internal paths (/session, /healthz, assets) are classified as
	// bypass, so the edge layer never interferes with them.
	r.Use(session.EnsureID())
	r.Use(access.Middleware(deps.log, deps.auditor))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	h := httpapi.Handlers{
		Sessions: deps.sessions,
		API:      deps.api,
		Audit:    deps.auditor,
		Throttle: deps.throttle,
		Log:      deps.log,
	}
	s := r.Group("/session")
	{
		s.POST("/login", h.Login)
		s.POST("/logout", h.Logout)
		s.GET("", h.Session)
		s.PATCH("", h.Update)
		s.POST("/register", h.Register)
	}

	// Everything else is a page navigation: client-layer guard, then proxy.
	proxy := webproxy.New(deps.appOrigin, deps.sessions, deps.auditor, deps.log)
	r.NoRoute(proxy.Serve)
}
