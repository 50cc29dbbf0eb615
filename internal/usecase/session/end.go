package session

import (
	"context"

	"github.com/saradorri/pokerledger/internal/domain"
	"go.uber.org/zap"
)

// End closes an active session with its final cash-out and settles the net
// result against the player's bankroll in the same transaction.
func (uc *SessionUseCase) End(ctx context.Context, playerID domain.PlayerID, sessionID domain.SessionID, finalCashOut domain.Money, notes string) (*domain.Session, error) {
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

	if err := session.End(finalCashOut, notes); err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := uow.Sessions().Save(session); err != nil {
		return nil, uc.rollback(uow, err)
	}

	player, err := uc.getPlayer(uow, playerID)
	if err != nil {
		return nil, uc.rollback(uow, err)
	}

	net := session.NetResult()
	if err := player.AdjustBankroll(net); err != nil {
		return nil, uc.rollback(uow, err)
	}
	if err := uow.Players().Save(player); err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := uc.commitAndPublish(ctx, uow, session); err != nil {
		return nil, err
	}

	uc.logger.Info("Session ended",
		zap.String("sessionID", sessionID.String()),
		zap.String("playerID", playerID.String()),
		zap.String("netResult", net.String()))

	return session, nil
}
