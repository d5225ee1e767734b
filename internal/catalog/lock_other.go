//go:build !unix

package catalog

type instanceLock struct{}

// acquireLock is a no-op on platforms without flock.
func acquireLock(string) (*instanceLock, error) {
	return &instanceLock{}, nil
}

func (*instanceLock) release() error {
	return nil
}
