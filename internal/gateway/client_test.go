package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"atas-gateway/internal/minutes"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second)
}

func TestLoginUnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		w.Write([]byte(`{"success":true,"data":{"token":"tok-1","accessLevel":"client","user":{"id":"u1","login":"acme","accessLevel":"client"}}}`))
	})

	res, err := c.Login(context.Background(), "acme", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token != "tok-1" || res.AccessLevel != "client" || res.User.ID != "u1" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestLoginFailurePropagatesEnvelopeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"credenciais inválidas"}`))
	})

	_, err := c.Login(context.Background(), "acme", "wrong")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "credenciais inválidas" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestSuccessFalseIsAnErrorEvenOn200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	})

	_, err := c.CurrentUser(context.Background(), "tok")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Message != "request failed" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
}

func TestCurrentUserSendsBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-9" {
			t.Errorf("authorization = %q", got)
		}
		w.Write([]byte(`{"success":true,"data":{"id":"u1","login":"maria","accessLevel":"notary"}}`))
	})

	u, err := c.CurrentUser(context.Background(), "tok-9")
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if u.Login != "maria" || u.AccessLevel != "notary" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestMeetingMinutesEncodesFilters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("status") != "pending" || q.Get("page") != "3" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Has("cnpj") {
			t.Errorf("empty filters must not be sent: %v", q)
		}
		w.Write([]byte(`{"success":true,"data":{"meetingMinutes":[{"id":"m1","status":"pending"}],"total":1,"page":3,"limit":10,"totalPages":1}}`))
	})

	page, err := c.MeetingMinutes(context.Background(), "tok", minutes.Filters{Status: minutes.StatusPending, Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.MeetingMinutes) != 1 || page.MeetingMinutes[0].ID != "m1" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestAuthenticateReturnsTxID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/meeting-minutes/m7/authenticate" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":{"blockchainTxId":"0xabc"}}`))
	})

	tx, err := c.AuthenticateMeetingMinute(context.Background(), "tok", "m7")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if tx != "0xabc" {
		t.Fatalf("tx = %q", tx)
	}
}

func TestUnreadableResponseBecomesTypedError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream exploded</html>"))
	})

	_, err := c.CurrentUser(context.Background(), "tok")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Fatalf("status = %d", apiErr.Status)
	}
}
