package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-memorial/internal/ports/auth"
)

func captureClient(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, _ := auth.ClientFromContext(r.Context())
		*got = c.ID
		w.WriteHeader(http.StatusOK)
	})
}

func TestClientContext_HeaderWins(t *testing.T) {
	var got string
	h := ClientContext(ClientOptions{})(captureClient(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ClientHeader, "cli-client-1")
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: "cookie-client-1"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got != "cli-client-1" {
		t.Fatalf("expected header client, got %q", got)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie should be issued when the client is known")
	}
}

func TestClientContext_CookieReused(t *testing.T) {
	var got string
	h := ClientContext(ClientOptions{})(captureClient(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: "cookie-client-1"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "cookie-client-1" {
		t.Fatalf("expected cookie client, got %q", got)
	}
}

func TestClientContext_IssuesCookieWhenMissingOrInvalid(t *testing.T) {
	var got string
	h := ClientContext(ClientOptions{SecureCookie: true})(captureClient(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ClientHeader, "bad id with spaces")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != ClientCookie {
		t.Fatalf("expected one %s cookie, got %#v", ClientCookie, cookies)
	}
	if cookies[0].Value != got || got == "" {
		t.Fatalf("cookie value %q must match context client %q", cookies[0].Value, got)
	}
	if !cookies[0].Secure || !cookies[0].HttpOnly {
		t.Fatalf("expected Secure+HttpOnly cookie")
	}
}

type stubGate struct {
	ok  bool
	err error
}

func (g stubGate) Authenticate(context.Context, string) (bool, error) { return g.ok, g.err }
func (g stubGate) IsAuthenticated(context.Context) (bool, error)      { return g.ok, g.err }
func (g stubGate) Logout(context.Context) error                       { return g.err }

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	cases := []struct {
		name string
		gate stubGate
		want int
	}{
		{"authenticated", stubGate{ok: true}, http.StatusTeapot},
		{"no session", stubGate{}, http.StatusUnauthorized},
		{"storage error", stubGate{err: errors.New("boom")}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireAdmin(tc.gate, nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
