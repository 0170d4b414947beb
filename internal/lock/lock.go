// internal/lock/lock.go
package lock

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// ErrTimeout is returned when another instance holds the lock past the wait budget.
var ErrTimeout = errors.New("lock: timed out waiting for lock")

// PollInterval is how often a held lock is retried.
const PollInterval = 100 * time.Millisecond

// Lock is an exclusive advisory lock on a file.
// At most ONE cycle runs at a time across processes.
type Lock struct {
	path string
	f    *os.File
}

// Acquire takes the lock, retrying until timeout elapses or ctx ends.
// A zero timeout means a single attempt.
func Acquire(ctx context.Context, path string, timeout time.Duration) (*Lock, error) {
	deadline := time.Now().Add(timeout)
	for {
		f, err := tryLock(path)
		if err != nil {
			return nil, err
		}
		if f != nil {
			return &Lock{path: path, f: f}, nil
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("%w: %s after %s", ErrTimeout, path, timeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(PollInterval):
		}
	}
}

// tryLock makes one attempt. A nil file with a nil error means the lock is busy.
// The locked file MUST still be the one at path: a holder removes it on release,
// so a lock won on an unlinked file does not exclude a newcomer.
func tryLock(path string) (*os.File, error) {
	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
		if err != nil {
			return nil, fmt.Errorf("lock: open %s: %w", path, err)
		}

		err = unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if errors.Is(err, unix.EWOULDBLOCK) {
			f.Close()
			return nil, nil
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("lock: flock %s: %w", path, err)
		}

		held, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("lock: stat %s: %w", path, err)
		}
		current, err := os.Stat(path)
		if err == nil && os.SameFile(held, current) {
			return f, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.Close()
			return nil, fmt.Errorf("lock: stat %s: %w", path, err)
		}

		// replaced or removed underneath us
		f.Close()
	}
}

// Release removes the lock file, then unlocks. Removal is best effort.
// The file is unlinked while still locked: a waiter NEVER wins a file about to disappear.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	_ = os.Remove(l.path)
	err := unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	l.f = nil
	return err
}
