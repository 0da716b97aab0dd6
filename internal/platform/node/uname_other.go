//go:build !unix

package node

import "runtime"

func uname() (string, string) {
	return runtime.GOOS, "unknown"
}
