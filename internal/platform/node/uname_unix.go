//go:build unix

package node

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// uname returns the kernel name and release.
func uname() (string, string) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return runtime.GOOS, "unknown"
	}

	return unix.ByteSliceToString(u.Sysname[:]), unix.ByteSliceToString(u.Release[:])
}
