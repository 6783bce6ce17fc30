//go:build unix

package secret

import (
	"io/fs"
	"syscall"
)

// fileID returns the filesystem object id of the stat'd artifact: the inode
// number on unix systems.
func fileID(fi fs.FileInfo) uint64 {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return st.Ino
	}
	return 0
}
