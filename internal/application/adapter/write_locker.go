// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"github.com/google/uuid"
)

// WriteLocker serializes ledger writes of a single user.
type WriteLocker interface {
	// Lock blocks until the user's write lock is held and returns its release func.
	Lock(userID uuid.UUID) (unlock func())
}
