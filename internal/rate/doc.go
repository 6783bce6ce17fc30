// Package rate provides the Redis-backed fixed-window counter behind the
// Gate's optional handshake throttle.
//
// # Window semantics
//
// Fixed-window counters: INCR + conditional EXPIRE on first hit. Key prefix:
//   - hs: — failed handshake attempts per client IP
//
// Successful handshakes never increment a counter; the throttle only slows
// down clients that keep failing the expensive handshake.
//
// # What this package must NOT do
//
//   - Decide when throttling applies (the Gate owns that policy, and the
//     feature is off by default).
//   - Be imported outside the ticketauth module.
package rate
