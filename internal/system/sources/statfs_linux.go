//go:build linux

package sources

import (
	"golang.org/x/sys/unix"

	"github.com/sigreer/diskinfo/internal/system"
)

func unameVersion() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "unknown"
	}
	return unix.ByteSliceToString(uts.Sysname[:]) + " " + unix.ByteSliceToString(uts.Release[:])
}

// maxComponentLength asks the filesystem mounted at path for its name length
// limit.
func maxComponentLength(path string) *int64 {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return nil
	}
	return system.Int(int64(st.Namelen))
}
