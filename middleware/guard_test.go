package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/larkvale/ticketauth"
	"github.com/larkvale/ticketauth/ticket"
)

type countingAuthenticator struct {
	identity string
	err      error
	calls    int
}

func (a *countingAuthenticator) Authenticate(context.Context, *http.Request) (string, error) {
	a.calls++
	if a.err != nil {
		return "", a.err
	}
	return a.identity, nil
}

func newGate(t *testing.T, auth ticketauth.Authenticator, nowUnix int64) *ticketauth.Gate {
	t.Helper()

	cfg := ticketauth.Config{
		Ticket: ticketauth.TicketConfig{Secret: "mw-secret"},
		Transport: ticketauth.TransportConfig{
			Path:     "/",
			HTTPOnly: true,
		},
	}

	gate, err := ticketauth.New().
		WithConfig(cfg).
		WithAuthenticator(auth).
		WithClock(func() time.Time { return time.Unix(nowUnix, 0) }).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(gate.Close)

	return gate
}

func echoIdentity(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Fatal("identity missing from request context")
		}
		_, _ = w.Write([]byte(identity))
	})
}

func TestProtectSlowPathSetsCookie(t *testing.T) {
	auth := &countingAuthenticator{identity: "alice"}
	handler := Protect(newGate(t, auth, 1700000000))(echoIdentity(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "alice" {
		t.Fatalf("response = %d %q", rec.Code, rec.Body.String())
	}

	setCookie := rec.Header().Get("Set-Cookie")
	if setCookie == "" {
		t.Fatal("slow path response missing Set-Cookie")
	}
	if !strings.HasPrefix(setCookie, ticketauth.DefaultTokenName+"=") {
		t.Fatalf("Set-Cookie = %q, want token name prefix", setCookie)
	}
	if !strings.Contains(setCookie, "; Path=/") || !strings.Contains(setCookie, "; HttpOnly") {
		t.Fatalf("Set-Cookie = %q, want transport attributes", setCookie)
	}
}

func TestProtectFastPathNoCookieNoHandshake(t *testing.T) {
	auth := &countingAuthenticator{identity: "alice"}
	handler := Protect(newGate(t, auth, 1700000000))(echoIdentity(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  ticketauth.DefaultTokenName,
		Value: string(ticket.Issue("alice", 1699999990, "mw-secret")),
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "alice" {
		t.Fatalf("response = %d %q", rec.Code, rec.Body.String())
	}
	if auth.calls != 0 {
		t.Fatalf("fast path invoked the Authenticator %d times", auth.calls)
	}
	if rec.Header().Get("Set-Cookie") != "" {
		t.Fatal("fast path must not re-issue the ticket")
	}
}

func TestProtectRoundTripThroughResponseCookie(t *testing.T) {
	auth := &countingAuthenticator{identity: "bob"}
	handler := Protect(newGate(t, auth, 1700000000))(echoIdentity(t))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))

	// Feed the issued cookie back like a browser would.
	res := first.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("response carried %d cookies, want 1", len(cookies))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookies[0].Name, Value: cookies[0].Value})

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)

	if second.Body.String() != "bob" {
		t.Fatalf("second response body = %q, want %q", second.Body.String(), "bob")
	}
	if auth.calls != 1 {
		t.Fatalf("Authenticator ran %d times across the round trip, want 1", auth.calls)
	}
}

func TestProtectHandshakeFailureIs401(t *testing.T) {
	auth := &countingAuthenticator{err: errors.New("no such principal")}
	handler := Protect(newGate(t, auth, 1700000000))(echoIdentity(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if rec.Header().Get("Set-Cookie") != "" {
		t.Fatal("failed handshake must not issue a ticket")
	}
}

func TestProtectBadTicketTransparentlyReauthenticates(t *testing.T) {
	auth := &countingAuthenticator{identity: "carol"}
	handler := Protect(newGate(t, auth, 1700000000))(echoIdentity(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ticketauth.DefaultTokenName, Value: "garbage"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// The user never sees a "bad cookie" error: worst case is a
	// transparent re-authentication plus a replacement ticket.
	if rec.Code != http.StatusOK || rec.Body.String() != "carol" {
		t.Fatalf("response = %d %q", rec.Code, rec.Body.String())
	}
	if auth.calls != 1 {
		t.Fatalf("Authenticator ran %d times, want 1", auth.calls)
	}
	if rec.Header().Get("Set-Cookie") == "" {
		t.Fatal("replacement ticket missing")
	}
}

func TestProtectNilGate(t *testing.T) {
	handler := Protect(nil)(echoIdentity(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
