package domain

import "context"

// PlayerUseCase defines the interface for player business logic
type PlayerUseCase interface {
	Create(ctx context.Context, name, email, password string, initialBankroll Money) (*Player, error)
	CreateFromExternalAccount(ctx context.Context, name, email, externalID string, initialBankroll Money) (*Player, error)
	Authenticate(ctx context.Context, email, password string) (string, *Player, error)
	GetByID(ctx context.Context, id PlayerID) (*Player, error)
	UpdateName(ctx context.Context, id PlayerID, name string) (*Player, error)
	UpdateEmail(ctx context.Context, id PlayerID, email string) (*Player, error)
	LinkExternalAccount(ctx context.Context, id PlayerID, externalID string) (*Player, error)
	AdjustBankroll(ctx context.Context, id PlayerID, amount Money) (*Player, error)
	Delete(ctx context.Context, id PlayerID) error
}

// SessionUseCase defines the interface for session business logic
type SessionUseCase interface {
	Start(ctx context.Context, playerID PlayerID, location string, stakes Stakes, initialBuyIn Money, notes string) (*Session, error)
	AddTransaction(ctx context.Context, playerID PlayerID, sessionID SessionID, txType TransactionType, amount Money, description, notes string) (*Transaction, error)
	End(ctx context.Context, playerID PlayerID, sessionID SessionID, finalCashOut Money, notes string) (*Session, error)
	Cancel(ctx context.Context, playerID PlayerID, sessionID SessionID, reason string) (*Session, error)
	UpdateNotes(ctx context.Context, playerID PlayerID, sessionID SessionID, notes string) (*Session, error)
	UpdateLocation(ctx context.Context, playerID PlayerID, sessionID SessionID, location string) (*Session, error)
	GetByID(ctx context.Context, playerID PlayerID, sessionID SessionID) (*Session, error)
	ListByPlayer(ctx context.Context, playerID PlayerID) ([]*Session, error)
	ListByFilters(ctx context.Context, filters SessionFilters) ([]*Session, int64, error)
}

// StatsUseCase defines the interface for player statistics
type StatsUseCase interface {
	PlayerStats(ctx context.Context, id PlayerID) (*PlayerStats, error)
}
