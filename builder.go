package ticketauth

import (
	"fmt"
	"time"

	"github.com/larkvale/ticketauth/internal/rate"
	"github.com/larkvale/ticketauth/secret"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Gate]. Construction is allocation-only except for
// Build, which resolves the signing secret (the single operation that may
// touch the filesystem) and fails fast on configuration errors.
type Builder struct {
	config        Config
	authenticator Authenticator
	secretSource  secret.Source
	redis         redis.UniversalClient
	auditSink     AuditSink
	clock         func() time.Time

	built bool
}

// New creates a Builder with default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the configuration. Zero values keep their documented
// defaults.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = applyDefaults(cfg)
	return b
}

// WithAuthenticator sets the external handshake collaborator. Required.
func (b *Builder) WithAuthenticator(a Authenticator) *Builder {
	b.authenticator = a
	return b
}

// WithSecretSource injects a secret resolution strategy, overriding the
// fingerprint path but not an explicit Config secret. Tests use this to
// substitute a fixed key.
func (b *Builder) WithSecretSource(src secret.Source) *Builder {
	b.secretSource = src
	return b
}

// WithRedis sets the client backing the optional handshake throttle.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithAuditSink sets the destination for audit events.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithClock overrides the time source used for freshness checks and
// issuance. Tests use this to pin the clock.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.clock = now
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, resolves the signing secret, and
// returns the Gate. All failure modes here are fatal configuration errors;
// nothing that can go wrong per-request is checked here.
func (b *Builder) Build() (*Gate, error) {
	if b.built {
		return nil, ErrBuilderReused
	}
	b.built = true

	if b.authenticator == nil {
		return nil, ErrMissingAuthenticator
	}

	src, err := b.selectSecretSource()
	if err != nil {
		return nil, err
	}

	key, err := secret.Cached(src).Resolve()
	if err != nil {
		return nil, fmt.Errorf("ticketauth: resolve secret: %w", err)
	}

	var throttle *rate.Limiter
	if b.config.Throttle.Enabled {
		if b.redis == nil {
			return nil, ErrRedisRequired
		}
		throttle = rate.New(b.redis, rate.Config{
			MaxAttempts: b.config.Throttle.MaxAttempts,
			Cooldown:    b.config.Throttle.Cooldown,
		})
	}

	clock := b.clock
	if clock == nil {
		clock = time.Now
	}

	return &Gate{
		config:        b.config,
		authenticator: b.authenticator,
		secret:        key,
		throttle:      throttle,
		audit:         newAuditDispatcher(b.config.Audit, b.auditSink),
		metrics:       NewMetrics(b.config.Metrics),
		now:           clock,
	}, nil
}

// selectSecretSource picks the secret strategy: explicit config value, then
// injected source, then fingerprint artifact.
func (b *Builder) selectSecretSource() (secret.Source, error) {
	switch {
	case b.config.Ticket.Secret != "":
		return secret.Static(b.config.Ticket.Secret), nil
	case b.secretSource != nil:
		return b.secretSource, nil
	case b.config.Ticket.FingerprintPath != "":
		return secret.FileFingerprint{Path: b.config.Ticket.FingerprintPath}, nil
	default:
		return nil, ErrNoSecretSource
	}
}
