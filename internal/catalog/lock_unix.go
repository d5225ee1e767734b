//go:build unix

package catalog

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// lockSuffix names the sibling file holding the instance lock.
// Locking a separate file keeps the lock valid across the rename done by
// every persist.
const lockSuffix = ".lock"

// instanceLock is an exclusive flock held for the lifetime of a Catalog.
type instanceLock struct {
	file *os.File
}

// acquireLock takes a non-blocking exclusive lock for the catalog at path.
// Returns ErrLocked if another process holds it.
func acquireLock(path string) (*instanceLock, error) {
	file, err := os.OpenFile(path+lockSuffix, os.O_CREATE|os.O_RDWR, filePerms)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	err = unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		_ = file.Close()

		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, path)
		}

		return nil, fmt.Errorf("flock: %w", err)
	}

	return &instanceLock{file: file}, nil
}

// release unlocks and closes the lock file. The file itself is left in
// place; removing it would race with a process about to lock it.
func (l *instanceLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}

	unlockErr := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil

	return errors.Join(unlockErr, closeErr)
}
