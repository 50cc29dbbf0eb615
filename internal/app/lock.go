package app

import (
	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/lock"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
)

func (a *application) InitPlayerLockManager(logger *logger.Logger) domain.LockManager {
	return lock.NewPlayerLockManager(logger)
}
