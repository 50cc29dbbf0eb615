package session

import (
	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
)

// SessionUseCase implements domain.SessionUseCase
type SessionUseCase struct {
	uowFactory  domain.UnitOfWorkFactory
	publisher   domain.EventPublisher
	lockManager domain.LockManager
	logger      *logger.Logger
}

// NewSessionUseCase creates a new session use case
func NewSessionUseCase(
	uowFactory domain.UnitOfWorkFactory,
	publisher domain.EventPublisher,
	lockManager domain.LockManager,
	logger *logger.Logger,
) domain.SessionUseCase {
	return &SessionUseCase{
		uowFactory:  uowFactory,
		publisher:   publisher,
		lockManager: lockManager,
		logger:      logger,
	}
}
