package domain

import "context"

// LockManager serializes mutating operations per player
type LockManager interface {
	Lock(ctx context.Context, playerID PlayerID) error
	Unlock(playerID PlayerID)
}
