package ticket

// Field widths of the encoded record. DigestLen is the hex length of a
// SHA-1 class tag; IssuedAtLen fits unix timestamps well past year 9999.
const (
	DigestLen   = 40
	IssuedAtLen = 12

	headerLen = DigestLen + IssuedAtLen
)

// Ticket is the decoded form of the client-held credential. Instances are
// value types: created by Issue or Decode and never mutated afterwards.
type Ticket struct {
	// Digest is the keyed integrity tag over (IssuedAt, Identity, secret),
	// rendered as 40 lowercase hex characters.
	Digest string

	// IssuedAt is the issuance time in unix seconds. Zero means the field
	// was absent or unparseable; a zero IssuedAt is always stale.
	IssuedAt int64

	// Identity is the authenticated principal name, stored as the raw
	// remainder of the record.
	Identity string
}
