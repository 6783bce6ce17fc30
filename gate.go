package ticketauth

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/larkvale/ticketauth/internal/rate"
	"github.com/larkvale/ticketauth/ticket"
)

// Gate decides, per request, whether a presented ticket is good enough to
// skip the external handshake. Safe for concurrent use after Build; the
// only mutable state is the metrics counters and the audit buffer.
type Gate struct {
	config        Config
	authenticator Authenticator
	secret        string
	throttle      *rate.Limiter
	audit         *auditDispatcher
	metrics       *Metrics
	now           func() time.Time
}

// Admit authenticates one request.
//
// Fast path: a valid, fresh ticket under the configured token name admits
// the request immediately; the Authenticator is not invoked. Malformed,
// forged, stale, and absent tickets are treated identically and fall
// through to the slow path, never to an error.
//
// Slow path: the Authenticator runs. Its failure is returned verbatim and
// no ticket is issued. On success a fresh ticket is minted and returned in
// Admission.Issued for the transport to attach to the response.
func (g *Gate) Admit(r *http.Request) (Admission, error) {
	ctx := r.Context()
	now := g.now()

	raw, present := g.lookupTicket(r)
	if present {
		identity, ok := ticket.Validate(raw, now.Unix(), g.secret, g.config.Ticket.RefreshWindow)
		if ok {
			g.metrics.Inc(MetricFastPathHit)
			g.audit.Emit(ctx, AuditEvent{
				EventType: AuditFastPath,
				Identity:  identity,
				IP:        g.clientIP(ctx, r),
				Success:   true,
			})
			return Admission{Identity: identity, FromTicket: true}, nil
		}

		g.metrics.Inc(MetricTicketInvalid)
		g.audit.Emit(ctx, AuditEvent{
			EventType: AuditTicketInvalid,
			IP:        g.clientIP(ctx, r),
		})
	} else {
		g.metrics.Inc(MetricTicketAbsent)
	}

	return g.slowPath(ctx, r, now)
}

func (g *Gate) slowPath(ctx context.Context, r *http.Request, now time.Time) (Admission, error) {
	ip := g.clientIP(ctx, r)

	if g.throttle != nil {
		err := g.throttle.Check(ctx, ip)
		switch {
		case errors.Is(err, rate.ErrThrottled):
			g.metrics.Inc(MetricHandshakeThrottled)
			g.audit.Emit(ctx, AuditEvent{
				EventType: AuditHandshakeThrottled,
				IP:        ip,
			})
			return Admission{}, ErrHandshakeThrottled
		case err != nil:
			// Counter backend outage: fail open. The handshake itself
			// still guards access.
		}
	}

	start := time.Now()
	identity, err := g.authenticator.Authenticate(ctx, r)
	g.metrics.Observe(MetricHandshakeLatency, time.Since(start))

	if err != nil {
		g.metrics.Inc(MetricHandshakeFailure)
		if g.throttle != nil {
			_ = g.throttle.RecordFailure(ctx, ip)
		}
		g.audit.Emit(ctx, AuditEvent{
			EventType: AuditHandshakeFailure,
			IP:        ip,
			Error:     err.Error(),
		})
		// The Gate never fails on its own: the Authenticator's error is
		// the caller's to interpret, unwrapped.
		return Admission{}, err
	}

	g.metrics.Inc(MetricHandshakeSuccess)

	raw := ticket.Issue(identity, now.Unix(), g.secret)
	g.metrics.Inc(MetricTicketIssued)
	g.audit.Emit(ctx, AuditEvent{
		EventType: AuditTicketIssued,
		Identity:  identity,
		IP:        ip,
		Success:   true,
	})

	return Admission{
		Identity: identity,
		Issued: &Credential{
			Name:     g.config.Ticket.TokenName,
			Value:    string(raw),
			Expires:  g.config.Transport.Expires,
			Domain:   g.config.Transport.Domain,
			Path:     g.config.Transport.Path,
			HTTPOnly: g.config.Transport.HTTPOnly,
		},
	}, nil
}

func (g *Gate) lookupTicket(r *http.Request) ([]byte, bool) {
	c, err := r.Cookie(g.config.Ticket.TokenName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	return []byte(c.Value), true
}

func (g *Gate) clientIP(ctx context.Context, r *http.Request) string {
	if ip := clientIPFromContext(ctx); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// TokenName reports the configured credential name.
func (g *Gate) TokenName() string {
	return g.config.Ticket.TokenName
}

// MetricsSnapshot copies the Gate's counters.
func (g *Gate) MetricsSnapshot() MetricsSnapshot {
	if g == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return g.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded under
// backpressure.
func (g *Gate) AuditDropped() uint64 {
	if g == nil {
		return 0
	}
	return g.audit.Dropped()
}

// Close flushes and stops the audit dispatcher. The Gate must not be used
// afterwards.
func (g *Gate) Close() {
	if g == nil {
		return
	}
	g.audit.Close()
}
