package session

import (
	"context"

	"github.com/saradorri/pokerledger/internal/domain"
	"go.uber.org/zap"
)

// AddTransaction records a financial event on an active session
func (uc *SessionUseCase) AddTransaction(ctx context.Context, playerID domain.PlayerID, sessionID domain.SessionID, txType domain.TransactionType, amount domain.Money, description, notes string) (*domain.Transaction, error) {
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

	tx, err := session.AddTransaction(txType, amount, description, notes)
	if err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := uow.Sessions().Save(session); err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := uc.commitAndPublish(ctx, uow, session); err != nil {
		return nil, err
	}

	uc.logger.Info("Transaction added",
		zap.String("transactionID", tx.ID().String()),
		zap.String("sessionID", sessionID.String()),
		zap.String("type", string(txType)),
		zap.String("amount", amount.String()))

	return tx, nil
}
