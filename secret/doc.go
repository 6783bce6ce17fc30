// Package secret resolves the server-held signing key used to tag tickets.
//
// Three strategies are provided: a [Static] value from configuration, an
// arbitrary injected [Source], and [FileFingerprint], which derives the key
// from the modification time and filesystem identity of a designated,
// rarely-changing artifact (typically the host's master configuration file).
// The fingerprint strategy gives implicit rotation: when an administrator
// touches the artifact, every outstanding ticket stops verifying and clients
// transparently re-authenticate.
//
// Resolution happens once per scope. [Cached] wraps any Source so that
// concurrent readers share a single resolution; the resolved key is
// read-only afterwards.
//
// # What this package must NOT do
//
//   - Persist the key anywhere. It exists only in process memory, derived
//     on demand from its source.
//   - Tolerate a missing fingerprint artifact. That is a fatal
//     configuration error at resolution time, never a per-request error.
package secret
