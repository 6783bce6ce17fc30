package ticketauth

import "errors"

var (
	// ErrMissingAuthenticator is returned by Build when no Authenticator
	// was supplied. The Gate cannot run a slow path without one.
	ErrMissingAuthenticator = errors.New("ticketauth: authenticator required")

	// ErrNoSecretSource is returned by Build when neither an explicit
	// secret, an injected source, nor a fingerprint artifact path was
	// configured.
	ErrNoSecretSource = errors.New("ticketauth: no secret source configured")

	// ErrRedisRequired is returned by Build when the handshake throttle is
	// enabled without a Redis client.
	ErrRedisRequired = errors.New("ticketauth: throttle enabled but no redis client")

	// ErrBuilderReused is returned by Build on a second call to the same
	// Builder.
	ErrBuilderReused = errors.New("ticketauth: builder already used")

	// ErrHandshakeThrottled is returned by Admit when the optional
	// slow-path throttle rejects the request before the Authenticator is
	// invoked. Never returned when the throttle is disabled.
	ErrHandshakeThrottled = errors.New("ticketauth: handshake attempts throttled")
)
