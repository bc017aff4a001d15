//go:build !(linux || darwin || freebsd || openbsd || netbsd)

package fsutil

// LockSupported reports whether Lock takes a real advisory lock.
const LockSupported = false

// Lock is a no-op on platforms without flock(2).
func Lock(path string) (unlock func() error, err error) {
	return func() error { return nil }, nil
}
