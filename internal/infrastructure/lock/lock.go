package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const acquireTimeout = 5 * time.Second

// PlayerLockManager serializes mutating operations per player within this
// process. Storage-level isolation and the version check still apply; the
// lock just keeps one process from racing itself.
type PlayerLockManager struct {
	locks  sync.Map // map[domain.PlayerID]*sync.Mutex
	logger *logger.Logger
}

// NewPlayerLockManager creates a new lock manager
func NewPlayerLockManager(logger *logger.Logger) *PlayerLockManager {
	return &PlayerLockManager{logger: logger}
}

// Lock acquires the lock for the given player, bounded by the context and
// an acquire timeout
func (m *PlayerLockManager) Lock(ctx context.Context, playerID domain.PlayerID) error {
	mu := m.getOrCreateMutex(playerID)

	lockChan := make(chan struct{})
	go func() {
		mu.Lock()
		close(lockChan)
	}()

	select {
	case <-lockChan:
		return nil
	case <-ctx.Done():
		m.logger.Warn("Failed to acquire player lock: context cancelled", zap.String("playerID", playerID.String()))
		return fmt.Errorf("failed to acquire lock for player %s: %w", playerID, ctx.Err())
	case <-time.After(acquireTimeout):
		m.logger.Warn("Failed to acquire player lock: timeout", zap.String("playerID", playerID.String()))
		return fmt.Errorf("failed to acquire lock for player %s: timeout", playerID)
	}
}

// Unlock releases the lock for the given player
func (m *PlayerLockManager) Unlock(playerID domain.PlayerID) {
	muInterface, ok := m.locks.Load(playerID)
	if !ok {
		m.logger.Warn("No lock found during unlock", zap.String("playerID", playerID.String()))
		return
	}
	muInterface.(*sync.Mutex).Unlock()
}

// TryLock attempts to acquire the lock without blocking
func (m *PlayerLockManager) TryLock(playerID domain.PlayerID) bool {
	return m.getOrCreateMutex(playerID).TryLock()
}

func (m *PlayerLockManager) getOrCreateMutex(playerID domain.PlayerID) *sync.Mutex {
	if mu, ok := m.locks.Load(playerID); ok {
		return mu.(*sync.Mutex)
	}
	actual, _ := m.locks.LoadOrStore(playerID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}
