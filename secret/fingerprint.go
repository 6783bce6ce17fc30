package secret

import (
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for key derivation. The fingerprint input is low
// entropy (a timestamp and a file id), so the derivation is deliberately
// memory-hard to make offline guessing of the artifact state expensive.
const (
	deriveMemory      = 65536 // KiB
	deriveTime        = 3
	deriveParallelism = 2
	deriveKeyLen      = 32
)

// FileFingerprint derives the signing secret from a designated,
// rarely-changing artifact on disk: its modification time and filesystem
// object id, stretched through argon2id with the artifact path as a
// deterministic salt.
//
// Rotation is implicit. Any administrative change that bumps the artifact's
// mtime (or replaces the file, changing its id) yields a different key, and
// every previously issued ticket fails its digest check from then on.
type FileFingerprint struct {
	// Path of the artifact to fingerprint. The file is only stat'd, never
	// read; its contents do not matter.
	Path string
}

// Resolve implements [Source]. A stat failure is returned verbatim: callers
// treat it as a fatal configuration error, not a per-request condition.
func (f FileFingerprint) Resolve() (string, error) {
	fi, err := os.Stat(f.Path)
	if err != nil {
		return "", fmt.Errorf("fingerprint artifact %s: %w", f.Path, err)
	}

	print := fmt.Sprintf("%d:%d", fi.ModTime().Unix(), fileID(fi))
	key := argon2.IDKey([]byte(print), []byte(f.Path), deriveTime, deriveMemory, deriveParallelism, deriveKeyLen)

	return hex.EncodeToString(key), nil
}
