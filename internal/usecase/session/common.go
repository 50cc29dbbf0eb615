package session

import (
	"context"
	"net/http"

	"github.com/saradorri/pokerledger/internal/domain"
	"go.uber.org/zap"
)

// getSessionAndValidateOwner loads a session and checks it belongs to the player
func (uc *SessionUseCase) getSessionAndValidateOwner(uow domain.UnitOfWork, playerID domain.PlayerID, sessionID domain.SessionID) (*domain.Session, error) {
	session, err := uow.Sessions().FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.NewAppError(domain.ErrCodeSessionNotFound, "Session not found", http.StatusNotFound, nil)
	}
	if session.PlayerID() != playerID {
		return nil, domain.NewForbiddenError("session belongs to another player")
	}
	return session, nil
}

// getPlayer loads a player, treating absence as an error
func (uc *SessionUseCase) getPlayer(uow domain.UnitOfWork, playerID domain.PlayerID) (*domain.Player, error) {
	player, err := uow.Players().FindByID(playerID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, domain.NewAppError(domain.ErrCodePlayerNotFound, "Player not found", http.StatusNotFound, nil)
	}
	return player, nil
}

// rollback discards the open transaction and returns the original error
func (uc *SessionUseCase) rollback(uow domain.UnitOfWork, err error) error {
	if rbErr := uow.Rollback(); rbErr != nil {
		uc.logger.Error("Failed to rollback transaction", zap.Error(rbErr))
	}
	return err
}

// commitAndPublish commits the unit of work and, only on success, publishes
// the events accumulated on the session. Events from a rolled back
// transaction never reach a handler.
func (uc *SessionUseCase) commitAndPublish(ctx context.Context, uow domain.UnitOfWork, session *domain.Session) error {
	events := session.PullEvents()
	if err := uow.Commit(); err != nil {
		return err
	}
	uc.publisher.PublishAll(ctx, events)
	return nil
}
