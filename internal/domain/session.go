package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus represents the lifecycle state of a session
type SessionStatus string

const (
	// SessionStatusActive play in progress, ledger open for appends
	SessionStatusActive SessionStatus = "active"

	// SessionStatusCompleted ended normally, terminal
	SessionStatusCompleted SessionStatus = "completed"

	// SessionStatusCancelled aborted, terminal
	SessionStatusCancelled SessionStatus = "cancelled"
)

// Session is the aggregate root for one playing session. It owns an
// append-only transaction ledger; totals are always derived from the
// ledger, never stored. Transitions out of a terminal state are not
// permitted.
type Session struct {
	id           SessionID
	playerID     PlayerID
	location     string
	stakes       Stakes
	startTime    time.Time
	endTime      *time.Time
	status       SessionStatus
	transactions []*Transaction
	notes        string
	createdAt    time.Time
	updatedAt    time.Time
	version      int64

	events []DomainEvent
}

// StartSession creates a session in the active state and seeds the ledger
// with the initial buy-in
func StartSession(playerID PlayerID, location string, stakes Stakes, initialBuyIn Money, notes string) (*Session, error) {
	if playerID == "" {
		return nil, NewValidationError("player_id", "player ID cannot be empty")
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, NewValidationError("location", "location cannot be empty")
	}
	if initialBuyIn.Currency() != stakes.Currency() {
		return nil, NewCurrencyMismatchError(initialBuyIn.Currency(), stakes.Currency())
	}

	now := time.Now()
	session := &Session{
		id:        NewSessionID(),
		playerID:  playerID,
		location:  location,
		stakes:    stakes,
		startTime: now,
		status:    SessionStatusActive,
		notes:     notes,
		createdAt: now,
		updatedAt: now,
	}

	buyIn, err := NewTransaction(session.id, playerID, TransactionTypeBuyIn, initialBuyIn, "Initial buy-in", "")
	if err != nil {
		return nil, err
	}
	session.transactions = append(session.transactions, buyIn)

	session.record(SessionStarted{
		baseEvent: newBaseEvent(),
		SessionID: session.id,
		PlayerID:  playerID,
		Location:  location,
		Stakes:    stakes,
	})
	return session, nil
}

// RehydrateSession reconstructs a session from persisted state. The
// transaction list must be in its stored order.
func RehydrateSession(id SessionID, playerID PlayerID, location string, stakes Stakes, startTime time.Time, endTime *time.Time, status SessionStatus, transactions []*Transaction, notes string, createdAt, updatedAt time.Time, version int64) *Session {
	return &Session{
		id:           id,
		playerID:     playerID,
		location:     location,
		stakes:       stakes,
		startTime:    startTime,
		endTime:      endTime,
		status:       status,
		transactions: transactions,
		notes:        notes,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		version:      version,
	}
}

// ID returns the session ID
func (s *Session) ID() SessionID {
	return s.id
}

// PlayerID returns the owning player ID
func (s *Session) PlayerID() PlayerID {
	return s.playerID
}

// Location returns the session location
func (s *Session) Location() string {
	return s.location
}

// Stakes returns the session stakes
func (s *Session) Stakes() Stakes {
	return s.stakes
}

// StartTime returns when the session started
func (s *Session) StartTime() time.Time {
	return s.startTime
}

// EndTime returns when the session ended, nil while active
func (s *Session) EndTime() *time.Time {
	if s.endTime == nil {
		return nil
	}
	t := *s.endTime
	return &t
}

// Status returns the lifecycle state
func (s *Session) Status() SessionStatus {
	return s.status
}

// Notes returns the session notes
func (s *Session) Notes() string {
	return s.notes
}

// CreatedAt returns the creation timestamp
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns the last mutation timestamp
func (s *Session) UpdatedAt() time.Time {
	return s.updatedAt
}

// Version returns the optimistic concurrency version
func (s *Session) Version() int64 {
	return s.version
}

// Transactions returns the ledger in stored order
func (s *Session) Transactions() []*Transaction {
	out := make([]*Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// IsActive reports whether the session is still in play
func (s *Session) IsActive() bool {
	return s.status == SessionStatusActive
}

// AddTransaction appends a ledger line. Only active sessions accept
// transactions.
func (s *Session) AddTransaction(txType TransactionType, amount Money, description, notes string) (*Transaction, error) {
	if s.status != SessionStatusActive {
		return nil, NewBusinessError(ErrCodeSessionNotActive, "Cannot add transaction to an inactive session")
	}
	if amount.Currency() != s.stakes.Currency() {
		return nil, NewCurrencyMismatchError(amount.Currency(), s.stakes.Currency())
	}
	tx, err := NewTransaction(s.id, s.playerID, txType, amount, description, notes)
	if err != nil {
		return nil, err
	}
	s.transactions = append(s.transactions, tx)
	s.touch()

	s.record(TransactionAdded{
		baseEvent:     newBaseEvent(),
		TransactionID: tx.ID(),
		SessionID:     s.id,
		PlayerID:      s.playerID,
		Type:          txType,
		Amount:        amount,
	})
	return tx, nil
}

// End completes the session. A positive final cash-out appends one more
// CASH_OUT transaction before the transition; notes are appended, not
// replaced.
func (s *Session) End(finalCashOut Money, notes string) error {
	if s.status != SessionStatusActive {
		return NewBusinessError(ErrCodeSessionNotActive, "Cannot end an inactive session")
	}
	if finalCashOut.Currency() != s.stakes.Currency() {
		return NewCurrencyMismatchError(finalCashOut.Currency(), s.stakes.Currency())
	}
	if finalCashOut.IsNegative() {
		return NewAppError(ErrCodeInvalidAmount, "Final cash-out cannot be negative", 400, nil)
	}

	if finalCashOut.IsPositive() {
		tx, err := NewTransaction(s.id, s.playerID, TransactionTypeCashOut, finalCashOut, "Final cash-out", "")
		if err != nil {
			return err
		}
		s.transactions = append(s.transactions, tx)
	}

	now := time.Now()
	s.endTime = &now
	s.status = SessionStatusCompleted
	s.appendNotes(notes)
	s.touch()

	duration := DurationBetween(s.startTime, now)
	s.record(SessionEnded{
		baseEvent: newBaseEvent(),
		SessionID: s.id,
		PlayerID:  s.playerID,
		NetResult: s.NetResult(),
		Duration:  duration,
	})
	return nil
}

// Cancel aborts the session. The reason, if given, is appended to the
// notes.
func (s *Session) Cancel(reason string) error {
	if s.status != SessionStatusActive {
		return NewBusinessError(ErrCodeSessionNotActive, "Cannot cancel an inactive session")
	}

	now := time.Now()
	s.endTime = &now
	s.status = SessionStatusCancelled
	if reason != "" {
		s.appendNotes("Cancelled: " + reason)
	}
	s.touch()

	s.record(SessionCancelled{
		baseEvent: newBaseEvent(),
		SessionID: s.id,
		PlayerID:  s.playerID,
		Reason:    reason,
	})
	return nil
}

// UpdateNotes replaces the session notes. Guarded here rather than by
// callers so a terminal session can never be mutated.
func (s *Session) UpdateNotes(notes string) error {
	if s.status != SessionStatusActive {
		return NewBusinessError(ErrCodeSessionNotActive, "Cannot update notes of an inactive session")
	}
	s.notes = notes
	s.touch()
	return nil
}

// UpdateLocation replaces the session location
func (s *Session) UpdateLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return NewValidationError("location", "location cannot be empty")
	}
	s.location = location
	s.touch()
	return nil
}

// TotalBuyIn sums BUY_IN and REBUY transactions
func (s *Session) TotalBuyIn() Money {
	return s.sumByTypes(TransactionTypeBuyIn, TransactionTypeRebuy)
}

// TotalCashOut sums CASH_OUT transactions
func (s *Session) TotalCashOut() Money {
	return s.sumByTypes(TransactionTypeCashOut)
}

// NetResult is total cash-out minus total buy-in
func (s *Session) NetResult() Money {
	// ledger entries all share the stakes currency, enforced on append
	net, _ := s.TotalCashOut().Subtract(s.TotalBuyIn())
	return net
}

// Duration returns the elapsed session length, nil while active
func (s *Session) Duration() *Duration {
	if s.endTime == nil {
		return nil
	}
	d := DurationBetween(s.startTime, *s.endTime)
	return &d
}

// HourlyRate is net result per hour, nil while active or for a
// zero-length session
func (s *Session) HourlyRate() *Money {
	duration := s.Duration()
	if duration == nil || duration.IsZero() {
		return nil
	}
	net := s.NetResult()
	rate := Money{
		amount:   net.Amount().Div(decimal.NewFromFloat(duration.Hours())),
		currency: net.Currency(),
	}
	return &rate
}

// BigBlindsWon is the net result expressed in big blinds
func (s *Session) BigBlindsWon() decimal.Decimal {
	bb := s.stakes.BigBlind().Amount()
	if bb.IsZero() {
		return decimal.Zero
	}
	return s.NetResult().Amount().Div(bb)
}

// PullEvents drains and returns the accumulated domain events. Callers
// must only publish them after a successful commit.
func (s *Session) PullEvents() []DomainEvent {
	events := s.events
	s.events = nil
	return events
}

func (s *Session) record(event DomainEvent) {
	s.events = append(s.events, event)
}

func (s *Session) appendNotes(notes string) {
	if notes == "" {
		return
	}
	if s.notes == "" {
		s.notes = notes
		return
	}
	s.notes = s.notes + "\n" + notes
}

func (s *Session) sumByTypes(types ...TransactionType) Money {
	total := ZeroMoney(s.stakes.Currency())
	for _, tx := range s.transactions {
		for _, t := range types {
			if tx.Type() == t {
				total, _ = total.Add(tx.Amount())
				break
			}
		}
	}
	return total
}

// touch bumps the updated timestamp
func (s *Session) touch() {
	s.updatedAt = time.Now()
}

// SessionFilters narrows session queries
type SessionFilters struct {
	PlayerID *PlayerID
	Status   *SessionStatus
	From     *time.Time
	To       *time.Time
	Location string
	Limit    int
	Offset   int
}

// SessionRepository defines the persistence contract for sessions
type SessionRepository interface {
	FindByID(id SessionID) (*Session, error)
	FindByPlayerID(playerID PlayerID) ([]*Session, error)
	FindActiveByPlayerID(playerID PlayerID) (*Session, error)
	FindCompletedByPlayerID(playerID PlayerID) ([]*Session, error)
	FindRecentByPlayerID(playerID PlayerID, limit int) ([]*Session, error)
	FindByFilters(filters SessionFilters) ([]*Session, int64, error)
	Save(session *Session) error
	Delete(id SessionID) error
}
