package domain

import "github.com/google/uuid"

// PlayerID identifies a player
type PlayerID string

// NewPlayerID generates a new random player ID
func NewPlayerID() PlayerID {
	return PlayerID(uuid.NewString())
}

// ParsePlayerID wraps a raw string as a player ID
func ParsePlayerID(s string) (PlayerID, error) {
	if s == "" {
		return "", NewValidationError("player_id", "player ID cannot be empty")
	}
	return PlayerID(s), nil
}

// String returns the raw ID value
func (id PlayerID) String() string {
	return string(id)
}

// SessionID identifies a session
type SessionID string

// NewSessionID generates a new random session ID
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// ParseSessionID wraps a raw string as a session ID
func ParseSessionID(s string) (SessionID, error) {
	if s == "" {
		return "", NewValidationError("session_id", "session ID cannot be empty")
	}
	return SessionID(s), nil
}

// String returns the raw ID value
func (id SessionID) String() string {
	return string(id)
}

// TransactionID identifies a ledger transaction
type TransactionID string

// NewTransactionID generates a new random transaction ID
func NewTransactionID() TransactionID {
	return TransactionID(uuid.NewString())
}

// ParseTransactionID wraps a raw string as a transaction ID
func ParseTransactionID(s string) (TransactionID, error) {
	if s == "" {
		return "", NewValidationError("transaction_id", "transaction ID cannot be empty")
	}
	return TransactionID(s), nil
}

// String returns the raw ID value
func (id TransactionID) String() string {
	return string(id)
}
