package domain

import "time"

// TransactionType represents the type of a ledger transaction
type TransactionType string

const (
	TransactionTypeBuyIn    TransactionType = "buy_in"
	TransactionTypeCashOut  TransactionType = "cash_out"
	TransactionTypeRebuy    TransactionType = "rebuy"
	TransactionTypeAddOn    TransactionType = "add_on"
	TransactionTypeTip      TransactionType = "tip"
	TransactionTypeRakeback TransactionType = "rakeback"
	TransactionTypeBonus    TransactionType = "bonus"
	TransactionTypeOther    TransactionType = "other"
)

// IsValid reports whether the transaction type is a known value
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeBuyIn, TransactionTypeCashOut, TransactionTypeRebuy,
		TransactionTypeAddOn, TransactionTypeTip, TransactionTypeRakeback,
		TransactionTypeBonus, TransactionTypeOther:
		return true
	}
	return false
}

// Transaction is a single immutable ledger line inside a session. It is
// never mutated or deleted once constructed.
type Transaction struct {
	id          TransactionID
	sessionID   SessionID
	playerID    PlayerID
	txType      TransactionType
	amount      Money
	timestamp   time.Time
	description string
	notes       string
}

// NewTransaction creates a new ledger transaction. Amounts must be
// strictly positive; direction is carried by the transaction type.
func NewTransaction(sessionID SessionID, playerID PlayerID, txType TransactionType, amount Money, description, notes string) (*Transaction, error) {
	if sessionID == "" {
		return nil, NewValidationError("session_id", "session ID cannot be empty")
	}
	if playerID == "" {
		return nil, NewValidationError("player_id", "player ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, NewValidationError("type", "unknown transaction type")
	}
	if !amount.IsPositive() {
		return nil, NewAppError(ErrCodeInvalidAmount, "Transaction amount must be greater than 0", 400, nil)
	}
	return &Transaction{
		id:          NewTransactionID(),
		sessionID:   sessionID,
		playerID:    playerID,
		txType:      txType,
		amount:      amount,
		timestamp:   time.Now(),
		description: description,
		notes:       notes,
	}, nil
}

// RehydrateTransaction reconstructs a transaction from persisted state
func RehydrateTransaction(id TransactionID, sessionID SessionID, playerID PlayerID, txType TransactionType, amount Money, timestamp time.Time, description, notes string) *Transaction {
	return &Transaction{
		id:          id,
		sessionID:   sessionID,
		playerID:    playerID,
		txType:      txType,
		amount:      amount,
		timestamp:   timestamp,
		description: description,
		notes:       notes,
	}
}

// ID returns the transaction ID
func (t *Transaction) ID() TransactionID {
	return t.id
}

// SessionID returns the owning session ID
func (t *Transaction) SessionID() SessionID {
	return t.sessionID
}

// PlayerID returns the player the transaction belongs to
func (t *Transaction) PlayerID() PlayerID {
	return t.playerID
}

// Type returns the transaction type
func (t *Transaction) Type() TransactionType {
	return t.txType
}

// Amount returns the transaction amount
func (t *Transaction) Amount() Money {
	return t.amount
}

// Timestamp returns when the transaction occurred
func (t *Transaction) Timestamp() time.Time {
	return t.timestamp
}

// Description returns the optional description
func (t *Transaction) Description() string {
	return t.description
}

// Notes returns the optional notes
func (t *Transaction) Notes() string {
	return t.notes
}

// TransactionFilters narrows transaction queries
type TransactionFilters struct {
	PlayerID  *PlayerID
	SessionID *SessionID
	Type      *TransactionType
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// TransactionRepository defines the persistence contract for ledger
// transactions. Rows are insert-only; Save never updates an existing row.
type TransactionRepository interface {
	FindByID(id TransactionID) (*Transaction, error)
	FindBySessionID(sessionID SessionID) ([]*Transaction, error)
	FindByPlayerID(playerID PlayerID, limit, offset int) ([]*Transaction, error)
	FindByFilters(filters TransactionFilters) ([]*Transaction, int64, error)
	Save(transaction *Transaction) error
	Delete(id TransactionID) error
}
