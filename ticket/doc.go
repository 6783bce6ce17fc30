// Package ticket implements the binary ticket format and the pure functions
// that create and check tickets: encoding, keyed digest computation,
// issuance, and validation.
//
// # Wire format
//
// A ticket is a single byte record with two fixed-width fields and a raw
// suffix:
//
//	digest[40]   lowercase hex HMAC-SHA1 tag
//	issuedAt[12] unix seconds, ASCII decimal, zero-padded ("%012d")
//	identity[..] authenticated principal, all remaining bytes
//
// The identity carries no length prefix and no delimiter, so any byte
// sequence (including bytes equal to the padding characters, or the empty
// string) round-trips exactly.
//
// # What this package must NOT do
//
//   - Perform I/O or block. Every function here is a synchronous, CPU-bound
//     computation safe for unlimited concurrent callers.
//   - Return errors from Decode. Malformed input decodes to zero values and
//     is rejected later by Validate through digest mismatch or staleness.
//   - Log or otherwise expose the secret.
package ticket
