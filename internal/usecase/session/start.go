package session

import (
	"context"

	"github.com/saradorri/pokerledger/internal/domain"
	"go.uber.org/zap"
)

// Start opens a new session for the player, seeding the ledger with the
// initial buy-in and bumping the player's lifetime session count.
func (uc *SessionUseCase) Start(ctx context.Context, playerID domain.PlayerID, location string, stakes domain.Stakes, initialBuyIn domain.Money, notes string) (*domain.Session, error) {
	if err := uc.lockManager.Lock(ctx, playerID); err != nil {
		return nil, domain.NewInternalError("Failed to acquire player lock", err)
	}
	defer uc.lockManager.Unlock(playerID)

	uow := uc.uowFactory.New()
	if err := uow.Begin(); err != nil {
		return nil, err
	}

	player, err := uc.getPlayer(uow, playerID)
	if err != nil {
		return nil, uc.rollback(uow, err)
	}

	session, err := domain.StartSession(playerID, location, stakes, initialBuyIn, notes)
	if err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := uow.Sessions().Save(session); err != nil {
		return nil, uc.rollback(uow, err)
	}

	player.IncrementSessionCount()
	if err := uow.Players().Save(player); err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := uc.commitAndPublish(ctx, uow, session); err != nil {
		return nil, err
	}

	uc.logger.Info("Session started",
		zap.String("sessionID", session.ID().String()),
		zap.String("playerID", playerID.String()),
		zap.String("location", location),
		zap.String("stakes", stakes.String()))

	return session, nil
}
