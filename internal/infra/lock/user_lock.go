// Package lock provides in-process write serialization per user.
package lock

import (
	"sync"

	"github.com/google/uuid"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
)

type userMutex struct {
	mu   sync.Mutex
	refs int
}

// UserLocker hands out one mutex per user. Entries are dropped once no
// goroutine holds or waits on them, so the map only grows with active writers.
type UserLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*userMutex
}

// NewUserLocker creates a new UserLocker instance.
func NewUserLocker() *UserLocker {
	return &UserLocker{
		locks: make(map[uuid.UUID]*userMutex),
	}
}

var _ adapter.WriteLocker = (*UserLocker)(nil)

// Lock blocks until the write lock of the user is held.
// The returned func releases it and must be called exactly once.
func (l *UserLocker) Lock(userID uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.locks[userID]
	if !ok {
		entry = &userMutex{}
		l.locks[userID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.mu.Unlock()

			l.mu.Lock()
			entry.refs--
			if entry.refs == 0 {
				delete(l.locks, userID)
			}
			l.mu.Unlock()
		})
	}
}

// Len returns the number of users with a held or awaited lock.
func (l *UserLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
