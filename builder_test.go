package ticketauth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/larkvale/ticketauth/secret"
	"github.com/larkvale/ticketauth/ticket"
)

func TestBuildRequiresAuthenticator(t *testing.T) {
	cfg := defaultConfig()
	cfg.Ticket.Secret = "s"

	if _, err := New().WithConfig(cfg).Build(); !errors.Is(err, ErrMissingAuthenticator) {
		t.Fatalf("Build = %v, want ErrMissingAuthenticator", err)
	}
}

func TestBuildRequiresSecretSource(t *testing.T) {
	_, err := New().
		WithAuthenticator(&stubAuthenticator{identity: "x"}).
		Build()
	if !errors.Is(err, ErrNoSecretSource) {
		t.Fatalf("Build = %v, want ErrNoSecretSource", err)
	}
}

func TestBuildRejectsReuse(t *testing.T) {
	b := New().
		WithConfig(testConfig()).
		WithAuthenticator(&stubAuthenticator{identity: "x"})

	gate, err := b.Build()
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	t.Cleanup(gate.Close)

	if _, err := b.Build(); !errors.Is(err, ErrBuilderReused) {
		t.Fatalf("second Build = %v, want ErrBuilderReused", err)
	}
}

func TestBuildThrottleRequiresRedis(t *testing.T) {
	cfg := testConfig()
	cfg.Throttle.Enabled = true

	_, err := New().
		WithConfig(cfg).
		WithAuthenticator(&stubAuthenticator{identity: "x"}).
		Build()
	if !errors.Is(err, ErrRedisRequired) {
		t.Fatalf("Build = %v, want ErrRedisRequired", err)
	}
}

func TestBuildMissingFingerprintArtifactIsFatal(t *testing.T) {
	cfg := defaultConfig()
	cfg.Ticket.FingerprintPath = filepath.Join(t.TempDir(), "absent.conf")

	_, err := New().
		WithConfig(cfg).
		WithAuthenticator(&stubAuthenticator{identity: "x"}).
		Build()
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Build = %v, want wrapped ErrNotExist", err)
	}
}

func TestBuildFingerprintSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.conf")
	if err := os.WriteFile(path, []byte("# conf\n"), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	cfg := defaultConfig()
	cfg.Ticket.FingerprintPath = path

	auth := &stubAuthenticator{identity: "alice"}
	gate, err := New().
		WithConfig(cfg).
		WithAuthenticator(auth).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(gate.Close)

	// Slow path issues a ticket under the derived secret; the same gate
	// accepts it back.
	adm, err := gate.Admit(requestWithTicket(DefaultTokenName, nil))
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	re, err := gate.Admit(requestWithTicket(DefaultTokenName, []byte(adm.Issued.Value)))
	if err != nil {
		t.Fatalf("re-Admit: %v", err)
	}
	if !re.FromTicket {
		t.Fatal("ticket under derived secret did not admit on the fast path")
	}
}

func TestBuildExplicitSecretWinsOverSource(t *testing.T) {
	const now = int64(1700000000)
	cfg := testConfig() // explicit secret "gate-test-secret"

	gate, err := New().
		WithConfig(cfg).
		WithAuthenticator(&stubAuthenticator{identity: "x"}).
		WithSecretSource(secret.Static("injected-secret")).
		WithClock(fixedClock(now)).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(gate.Close)

	raw := ticket.Issue("alice", now-1, "gate-test-secret")
	adm, err := gate.Admit(requestWithTicket(DefaultTokenName, raw))
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if !adm.FromTicket {
		t.Fatal("explicit config secret must take precedence over injected source")
	}
}

func TestBuildAppliesDefaults(t *testing.T) {
	gate, err := New().
		WithConfig(Config{Ticket: TicketConfig{Secret: "s"}}).
		WithAuthenticator(&stubAuthenticator{identity: "x"}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(gate.Close)

	if gate.TokenName() != DefaultTokenName {
		t.Fatalf("TokenName = %q, want %q", gate.TokenName(), DefaultTokenName)
	}
	if gate.config.Ticket.RefreshWindow != DefaultRefreshWindow {
		t.Fatalf("RefreshWindow = %v, want %v", gate.config.Ticket.RefreshWindow, DefaultRefreshWindow)
	}
}

func TestFixedClockDrivesFreshness(t *testing.T) {
	auth := &stubAuthenticator{identity: "alice"}
	gate := newTestGate(t, testConfig(), auth, 1700000000)

	adm, err := gate.Admit(requestWithTicket(DefaultTokenName, nil))
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}

	// Same ticket, gate pinned one window later: stale.
	later := newTestGate(t, testConfig(), &stubAuthenticator{identity: "alice"},
		1700000000+int64(DefaultRefreshWindow/time.Second))
	re, err := later.Admit(requestWithTicket(DefaultTokenName, []byte(adm.Issued.Value)))
	if err != nil {
		t.Fatalf("Admit later: %v", err)
	}
	if re.FromTicket {
		t.Fatal("ticket accepted a full window after issuance")
	}
}
