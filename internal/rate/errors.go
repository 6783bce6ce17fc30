package rate

import "errors"

var (
	// ErrThrottled indicates the caller exceeded the failed-handshake
	// budget for the current window.
	ErrThrottled = errors.New("handshake attempts throttled")
	// ErrRedisUnavailable indicates the counter backend could not be
	// reached.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
