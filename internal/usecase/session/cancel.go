package session

import (
	"context"

	"github.com/saradorri/pokerledger/internal/domain"
	"go.uber.org/zap"
)

// Cancel voids an active session. No money moves: the ledger is kept for
// audit but the session never settles against the bankroll.
func (uc *SessionUseCase) Cancel(ctx context.Context, playerID domain.PlayerID, sessionID domain.SessionID, reason string) (*domain.Session, error) {
	if err := uc.lockManager.Lock(ctx, playerID); err != nil {
		return nil, domain.NewInternalError("Failed to acquire player lock", err)
	}
	defer uc.lockManager.Unlock(playerID)

	uow := uc.uowFactory.New()
	if err := uow.Begin(); err != nil {
		return nil, err
	}

	session, err := uc.getSessionAndValidateOwner(uow, playerID, sessionID)
	if err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := session.Cancel(reason); err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := uow.Sessions().Save(session); err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := uc.commitAndPublish(ctx, uow, session); err != nil {
		return nil, err
	}

	uc.logger.Info("Session cancelled",
		zap.String("sessionID", sessionID.String()),
		zap.String("playerID", playerID.String()),
		zap.String("reason", reason))

	return session, nil
}
