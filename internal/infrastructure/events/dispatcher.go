package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Dispatcher implements domain.EventPublisher. Handlers are registered at
// startup, keyed by event type, and invoked concurrently on publish. A
// handler failure is logged and contained; it never reaches the caller
// and never prevents other handlers from running.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]domain.EventHandler
	enabled  bool
	logger   *logger.Logger
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]domain.EventHandler),
		enabled:  true,
		logger:   logger,
	}
}

// Register appends a handler for the given event type
func (d *Dispatcher) Register(eventType string, handler domain.EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

// SetEnabled toggles dispatching globally, e.g. to suppress side effects
// in tests
func (d *Dispatcher) SetEnabled(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = enabled
}

// Publish invokes all handlers registered for the event's type and waits
// for them to finish
func (d *Dispatcher) Publish(ctx context.Context, event domain.DomainEvent) {
	d.mu.RLock()
	enabled := d.enabled
	handlers := d.handlers[event.EventType()]
	d.mu.RUnlock()

	if !enabled || len(handlers) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, handler := range handlers {
		wg.Add(1)
		go func(h domain.EventHandler) {
			defer wg.Done()
			d.invoke(ctx, h, event)
		}(handler)
	}
	wg.Wait()
}

// PublishAll publishes a batch of events concurrently
func (d *Dispatcher) PublishAll(ctx context.Context, events []domain.DomainEvent) {
	var wg sync.WaitGroup
	for _, event := range events {
		wg.Add(1)
		go func(e domain.DomainEvent) {
			defer wg.Done()
			d.Publish(ctx, e)
		}(event)
	}
	wg.Wait()
}

func (d *Dispatcher) invoke(ctx context.Context, handler domain.EventHandler, event domain.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Event handler panicked",
				zap.String("eventID", event.EventID()),
				zap.String("eventType", event.EventType()),
				zap.Error(fmt.Errorf("panic: %v", r)))
		}
	}()

	if err := handler(ctx, event); err != nil {
		d.logger.Error("Event handler failed",
			zap.String("eventID", event.EventID()),
			zap.String("eventType", event.EventType()),
			zap.Error(err))
	}
}
