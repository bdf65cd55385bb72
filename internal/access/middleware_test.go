package access

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atas-gateway/internal/audit"
	"atas-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

func newEdgeRouter(auditor *audit.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(session.EnsureID())
	r.Use(Middleware(nil, auditor))
	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusOK, "page")
	})
	return r
}

func edgeToken(level string) string {
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." +
		enc([]byte(`{"accessLevel":"`+level+`"}`)) + ".sig"
}

func navigate(t *testing.T, r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.AuthCookieName, Value: cookie})
	}
	r.ServeHTTP(w, req)
	return w
}

func TestMiddlewareRedirectsAnonymousToLogin(t *testing.T) {
	r := newEdgeRouter(nil)
	w := navigate(t, r, "/empresa/ata/123", "")
	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("location = %q", loc)
	}
}

func TestMiddlewareAllowsMatchingRole(t *testing.T) {
	r := newEdgeRouter(nil)
	w := navigate(t, r, "/dashboard", edgeToken("notary"))
	if w.Code != http.StatusOK || w.Body.String() != "page" {
		t.Fatalf("expected the page to render, got %d %q", w.Code, w.Body.String())
	}
}

func TestMiddlewareBouncesWrongRoleAndAudits(t *testing.T) {
	repo := audit.NewMemoryRepo()
	r := newEdgeRouter(audit.NewService(repo))

	w := navigate(t, r, "/dashboard", edgeToken("client"))
	if w.Code != http.StatusTemporaryRedirect || w.Header().Get("Location") != "/empresa" {
		t.Fatalf("expected redirect to /empresa, got %d %q", w.Code, w.Header().Get("Location"))
	}

	events := repo.Events()
	if len(events) != 1 || events[0].Type != audit.EventTypeAccessDenied {
		t.Fatalf("expected one access_denied event, got %+v", events)
	}
	if events[0].Path != "/dashboard" || events[0].Target != "/empresa" {
		t.Fatalf("unexpected event %+v", events[0])
	}
}

func TestMiddlewareClearsCorruptedCookie(t *testing.T) {
	repo := audit.NewMemoryRepo()
	r := newEdgeRouter(audit.NewService(repo))

	w := navigate(t, r, "/dashboard", "not-a-token")
	if w.Code != http.StatusTemporaryRedirect || w.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", w.Code, w.Header().Get("Location"))
	}

	cleared := false
	for _, sc := range w.Result().Cookies() {
		if sc.Name == session.AuthCookieName && sc.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected an expired %s cookie, got %v", session.AuthCookieName, w.Header().Values("Set-Cookie"))
	}

	events := repo.Events()
	if len(events) != 1 || events[0].Type != audit.EventTypeSessionInvalidated {
		t.Fatalf("expected one session_invalidated event, got %+v", events)
	}
}

func TestMiddlewareBypassesAssets(t *testing.T) {
	r := newEdgeRouter(nil)
	for _, cookie := range []string{"", "garbage", edgeToken("client")} {
		w := navigate(t, r, "/favicon.ico", cookie)
		if w.Code != http.StatusOK {
			t.Fatalf("asset request must pass through, got %d", w.Code)
		}
	}
}

func TestMiddlewareIssuesSessionIDCookie(t *testing.T) {
	r := newEdgeRouter(nil)
	w := navigate(t, r, "/login", "")
	found := false
	for _, sc := range w.Result().Cookies() {
		if sc.Name == session.IDCookieName && sc.Value != "" {
			found = true
			if !strings.Contains(sc.Value, "-") {
				t.Fatalf("session id should be a uuid, got %q", sc.Value)
			}
		}
	}
	if !found {
		t.Fatalf("expected a %s cookie", session.IDCookieName)
	}
}
