package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventTypeSessionStarted   = "SESSION_STARTED"
	EventTypeSessionEnded     = "SESSION_ENDED"
	EventTypeSessionCancelled = "SESSION_CANCELLED"
	EventTypeTransactionAdded = "TRANSACTION_ADDED"
)

// DomainEvent is an immutable record of something that happened inside an
// aggregate. Events are accumulated on the aggregate and published only
// after the surrounding unit of work commits.
type DomainEvent interface {
	EventID() string
	EventType() string
	OccurredAt() time.Time
}

// EventHandler consumes a published domain event
type EventHandler func(ctx context.Context, event DomainEvent) error

// EventPublisher publishes committed domain events to registered handlers
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent)
	PublishAll(ctx context.Context, events []DomainEvent)
}

type baseEvent struct {
	id         string
	occurredAt time.Time
}

func newBaseEvent() baseEvent {
	return baseEvent{id: uuid.NewString(), occurredAt: time.Now()}
}

// EventID returns the generated event ID
func (e baseEvent) EventID() string {
	return e.id
}

// OccurredAt returns when the event occurred
func (e baseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// SessionStarted is emitted when a session enters play
type SessionStarted struct {
	baseEvent
	SessionID SessionID
	PlayerID  PlayerID
	Location  string
	Stakes    Stakes
}

// EventType implements DomainEvent
func (e SessionStarted) EventType() string {
	return EventTypeSessionStarted
}

// SessionEnded is emitted when a session completes
type SessionEnded struct {
	baseEvent
	SessionID SessionID
	PlayerID  PlayerID
	NetResult Money
	Duration  Duration
}

// EventType implements DomainEvent
func (e SessionEnded) EventType() string {
	return EventTypeSessionEnded
}

// SessionCancelled is emitted when a session is cancelled
type SessionCancelled struct {
	baseEvent
	SessionID SessionID
	PlayerID  PlayerID
	Reason    string
}

// EventType implements DomainEvent
func (e SessionCancelled) EventType() string {
	return EventTypeSessionCancelled
}

// TransactionAdded is emitted when a ledger line is appended to an active
// session
type TransactionAdded struct {
	baseEvent
	TransactionID TransactionID
	SessionID     SessionID
	PlayerID      PlayerID
	Type          TransactionType
	Amount        Money
}

// EventType implements DomainEvent
func (e TransactionAdded) EventType() string {
	return EventTypeTransactionAdded
}
