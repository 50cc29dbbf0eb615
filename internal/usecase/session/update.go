package session

import (
	"context"

	"github.com/saradorri/pokerledger/internal/domain"
)

// UpdateNotes replaces the notes of an active session
func (uc *SessionUseCase) UpdateNotes(ctx context.Context, playerID domain.PlayerID, sessionID domain.SessionID, notes string) (*domain.Session, error) {
	return uc.update(ctx, playerID, sessionID, func(s *domain.Session) error {
		return s.UpdateNotes(notes)
	})
}

// UpdateLocation changes where an active session is being played
func (uc *SessionUseCase) UpdateLocation(ctx context.Context, playerID domain.PlayerID, sessionID domain.SessionID, location string) (*domain.Session, error) {
	return uc.update(ctx, playerID, sessionID, func(s *domain.Session) error {
		return s.UpdateLocation(location)
	})
}

func (uc *SessionUseCase) update(ctx context.Context, playerID domain.PlayerID, sessionID domain.SessionID, mutate func(*domain.Session) error) (*domain.Session, error) {
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

	if err := mutate(session); err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := uow.Sessions().Save(session); err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := uc.commitAndPublish(ctx, uow, session); err != nil {
		return nil, err
	}

	return session, nil
}
