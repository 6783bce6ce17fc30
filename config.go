package ticketauth

import "time"

// DefaultTokenName is the credential name used when none is configured.
const DefaultTokenName = "ticketauth"

// DefaultRefreshWindow is the maximum ticket age used when none is
// configured.
const DefaultRefreshWindow = 3600 * time.Second

// Config carries all per-protected-resource settings. Instances are copied
// into the Gate at Build time and treated as immutable afterwards.
type Config struct {
	Ticket    TicketConfig
	Transport TransportConfig
	Throttle  ThrottleConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

// TicketConfig controls ticket issuance and validation.
type TicketConfig struct {
	// Secret is the explicit signing secret. When set it is used verbatim
	// and takes precedence over every other source.
	Secret string

	// FingerprintPath names the rarely-changing artifact whose mtime and
	// filesystem identity derive the secret when none is set explicitly.
	// Touching the artifact rotates the secret and invalidates every
	// outstanding ticket.
	FingerprintPath string

	// RefreshWindow is the maximum ticket age. A ticket older than this is
	// rejected regardless of digest validity. Zero means
	// DefaultRefreshWindow.
	RefreshWindow time.Duration

	// TokenName is the credential name on the wire. Empty means
	// DefaultTokenName.
	TokenName string
}

// TransportConfig holds attributes passed through opaquely to the issued
// credential's envelope. None of them affect validation.
type TransportConfig struct {
	Expires string
	Domain  string
	Path    string

	// HTTPOnly marks the issued credential as inaccessible to client-side
	// scripts. On by default.
	HTTPOnly bool
}

// ThrottleConfig tunes the optional Redis-backed limit on failed handshake
// attempts per client IP. Disabled by default; when disabled the Gate never
// fails independently of the Authenticator.
type ThrottleConfig struct {
	Enabled     bool
	MaxAttempts int
	Cooldown    time.Duration
}

// AuditConfig controls the asynchronous audit event dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int

	// DropIfFull drops events (counting them) instead of blocking Admit
	// when the buffer is full.
	DropIfFull bool
}

// MetricsConfig controls the in-process atomic counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Ticket: TicketConfig{
			RefreshWindow: DefaultRefreshWindow,
			TokenName:     DefaultTokenName,
		},
		Transport: TransportConfig{
			HTTPOnly: true,
		},
		Throttle: ThrottleConfig{
			Enabled:     false,
			MaxAttempts: 10,
			Cooldown:    15 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// applyDefaults fills zero values that have documented defaults. Explicitly
// configured values are never overridden.
func applyDefaults(cfg Config) Config {
	if cfg.Ticket.RefreshWindow <= 0 {
		cfg.Ticket.RefreshWindow = DefaultRefreshWindow
	}
	if cfg.Ticket.TokenName == "" {
		cfg.Ticket.TokenName = DefaultTokenName
	}
	if cfg.Throttle.MaxAttempts <= 0 {
		cfg.Throttle.MaxAttempts = 10
	}
	if cfg.Throttle.Cooldown <= 0 {
		cfg.Throttle.Cooldown = 15 * time.Minute
	}
	if cfg.Audit.BufferSize <= 0 {
		cfg.Audit.BufferSize = 1024
	}
	return cfg
}
