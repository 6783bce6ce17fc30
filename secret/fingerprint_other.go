//go:build !unix

package secret

import "io/fs"

// fileID has no inode to report on non-unix systems; the size stands in as
// a weak file identity, with mtime still carrying the rotation signal.
func fileID(fi fs.FileInfo) uint64 {
	return uint64(fi.Size())
}
