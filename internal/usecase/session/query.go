package session

import (
	"context"

	"github.com/saradorri/pokerledger/internal/domain"
)

// GetByID returns a single session owned by the player
func (uc *SessionUseCase) GetByID(ctx context.Context, playerID domain.PlayerID, sessionID domain.SessionID) (*domain.Session, error) {
	uow := uc.uowFactory.New()
	return uc.getSessionAndValidateOwner(uow, playerID, sessionID)
}

// ListByPlayer returns the player's sessions, most recent first
func (uc *SessionUseCase) ListByPlayer(ctx context.Context, playerID domain.PlayerID) ([]*domain.Session, error) {
	uow := uc.uowFactory.New()
	return uow.Sessions().FindByPlayerID(playerID)
}

// ListByFilters returns sessions matching the filters along with the total count
func (uc *SessionUseCase) ListByFilters(ctx context.Context, filters domain.SessionFilters) ([]*domain.Session, int64, error) {
	uow := uc.uowFactory.New()
	return uow.Sessions().FindByFilters(filters)
}
