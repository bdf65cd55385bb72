package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"atas-gateway/internal/audit"
	"atas-gateway/internal/gateway"
	"atas-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

// Throttle limits login attempts for a key. Returning false rejects the
// attempt. Nil disables throttling (tests, local runs).
type Throttle func(c *gin.Context, key string) (bool, error)

// Handlers is the session HTTP surface of the gateway.
type Handlers struct {
	Sessions *session.Manager
	API      *gateway.Client
	Audit    *audit.Service
	Throttle Throttle
	Log      *slog.Logger
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	CNPJ     string `json:"cnpj" binding:"required,cnpj"`
	Password string `json:"password" binding:"required,min=6"`
}

// Login exchanges credentials for a session and mirrors the token into the
// auth cookie for the edge layer. This is the only session operation whose
// error reaches the caller, so the login form can render a message.
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "login e senha são obrigatórios"})
		return
	}

	if h.Throttle != nil {
		ok, err := h.Throttle(c, req.Login)
		if err != nil {
			h.logger().Warn("login throttle unavailable", "err", err)
		} else if !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "muitas tentativas, aguarde um momento"})
			return
		}
	}

	sid := session.ID(c)
	st := h.Sessions.Store(sid)
	tok, err := st.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		h.auditLogin(c, sid, req.Login, "", false)
		h.respondBackendError(c, err)
		return
	}

	session.SetAuthCookie(c, tok)
	user, _ := st.User()
	h.auditLogin(c, sid, req.Login, user.AccessLevel, true)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout clears credentials everywhere and sends the browser through a full
// page load of /login, discarding any in-memory state it held.
func (h Handlers) Logout(c *gin.Context) {
	sid := session.ID(c)
	st := h.Sessions.Store(sid)
	login := ""
	if user, ok := st.User(); ok {
		login = user.Login
	}

	st.Logout(c.Request.Context())
	h.Sessions.Drop(sid)
	session.ClearAuthCookie(c)

	if err := h.Audit.LogLogout(c.Request.Context(), sid, login, c.ClientIP()); err != nil {
		h.logger().Warn("audit append failed", "err", err)
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// Session reports the tri-state session status plus the profile when settled.
func (h Handlers) Session(c *gin.Context) {
	st := h.Sessions.Store(session.ID(c))
	st.Init(c.Request.Context())

	if user, ok := st.User(); ok {
		c.JSON(http.StatusOK, gin.H{"status": st.Status().String(), "user": user})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": st.Status().String()})
}

// Update shallow-merges a partial profile into the session.
func (h Handlers) Update(c *gin.Context) {
	st := h.Sessions.Store(session.ID(c))
	st.Init(c.Request.Context())
	if _, ok := st.User(); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sessão não autenticada"})
		return
	}

	var patch session.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo inválido"})
		return
	}
	st.UpdateUser(patch)
	user, _ := st.User()
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Register forwards a company signup to the backend.
func (h Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cnpj inválido ou senha muito curta"})
		return
	}

	res, err := h.API.Register(c.Request.Context(), req.CNPJ, req.Password)
	if err != nil {
		h.respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": res.User, "message": res.Message})
}

func (h Handlers) respondBackendError(c *gin.Context, err error) {
	var apiErr *gateway.Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}
	h.logger().Error("backend unreachable", "err", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "serviço indisponível, tente novamente"})
}

func (h Handlers) auditLogin(c *gin.Context, sid, login, level string, ok bool) {
	if err := h.Audit.LogLogin(c.Request.Context(), sid, login, level, c.ClientIP(), ok); err != nil {
		h.logger().Warn("audit append failed", "err", err)
	}
}

func (h Handlers) logger() *slog.Logger {
	if h.Log != nil {
		return h.Log
	}
	return slog.Default()
}
