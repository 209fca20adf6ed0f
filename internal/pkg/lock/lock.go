// Package lock serializes work per key, such as all punches of one employee.
package lock

import (
	"context"
	"errors"
)

var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker grants exclusive access to key until release is called.
// Acquire blocks until the lock is free or ctx is done.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
