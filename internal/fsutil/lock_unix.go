//go:build linux || darwin || freebsd || openbsd || netbsd

package fsutil

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// LockSupported reports whether Lock takes a real advisory lock.
const LockSupported = true

// Lock takes an exclusive advisory lock on path, creating the file if needed.
// It blocks until the lock is available. The returned function releases the lock.
func Lock(path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("fsutil: lock %s: %w", path, err)
	}
	for {
		err = unix.Flock(int(f.Fd()), unix.LOCK_EX)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("fsutil: lock %s: %w", path, err)
	}
	return func() error {
		defer f.Close()
		return unix.Flock(int(f.Fd()), unix.LOCK_UN)
	}, nil
}
