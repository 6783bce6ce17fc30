package ticket

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode packs a ticket into its wire form: the digest padded to 40 bytes,
// the issuance time as a 12 byte zero-padded decimal, then the identity
// verbatim. Digests longer than 40 bytes are truncated; Issue never
// produces one.
func Encode(t Ticket) []byte {
	buf := make([]byte, 0, headerLen+len(t.Identity))

	digest := t.Digest
	if len(digest) > DigestLen {
		digest = digest[:DigestLen]
	}
	buf = append(buf, digest...)
	for i := len(digest); i < DigestLen; i++ {
		buf = append(buf, '0')
	}

	buf = append(buf, timestampField(t.IssuedAt)...)
	buf = append(buf, t.Identity...)

	return buf
}

// timestampField renders issuedAt in its fixed 12 byte wire form. The same
// rendering feeds the digest, so the signed message and the encoded record
// agree byte for byte.
func timestampField(issuedAt int64) string {
	return fmt.Sprintf("%0*d", IssuedAtLen, issuedAt)
}

// Decode is the exact inverse of Encode. It never fails: input shorter than
// the fixed header decodes to zero-value fields, and an unparseable
// timestamp decodes to 0 (which Validate treats as stale). Rejection of
// malformed tickets is Validate's job, not Decode's.
func Decode(raw []byte) Ticket {
	if len(raw) < headerLen {
		return Ticket{}
	}

	var t Ticket
	t.Digest = string(raw[:DigestLen])
	t.Identity = string(raw[headerLen:])

	field := strings.TrimLeft(string(raw[DigestLen:headerLen]), "0 ")
	if field == "" {
		// All-zero timestamp field. IssuedAt stays 0 and the ticket is
		// stale by definition, which is the correct outcome.
		return t
	}

	issuedAt, err := strconv.ParseInt(field, 10, 64)
	if err != nil || issuedAt < 0 {
		t.IssuedAt = 0
		return t
	}

	t.IssuedAt = issuedAt
	return t
}
