package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(logger.NewLogger("test", "error"))
}

func startedEvent(t *testing.T) domain.DomainEvent {
	t.Helper()
	sb, err := domain.NewMoneyFromFloat(1, "USD")
	require.NoError(t, err)
	bb, err := domain.NewMoneyFromFloat(2, "USD")
	require.NoError(t, err)
	stakes, err := domain.NewStakes(sb, bb, nil)
	require.NoError(t, err)
	buyIn, err := domain.NewMoneyFromFloat(100, "USD")
	require.NoError(t, err)
	session, err := domain.StartSession(domain.NewPlayerID(), "Bellagio", stakes, buyIn, "")
	require.NoError(t, err)
	events := session.PullEvents()
	require.Len(t, events, 1)
	return events[0]
}

func TestPublishInvokesAllHandlers(t *testing.T) {
	d := newTestDispatcher()

	var mu sync.Mutex
	var calls []string
	d.Register(domain.EventTypeSessionStarted, func(ctx context.Context, e domain.DomainEvent) error {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, "first")
		return nil
	})
	d.Register(domain.EventTypeSessionStarted, func(ctx context.Context, e domain.DomainEvent) error {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, "second")
		return nil
	})

	d.Publish(context.Background(), startedEvent(t))
	assert.ElementsMatch(t, []string{"first", "second"}, calls)
}

func TestHandlerFailureDoesNotBlockOthers(t *testing.T) {
	d := newTestDispatcher()

	var mu sync.Mutex
	invoked := false
	d.Register(domain.EventTypeSessionStarted, func(ctx context.Context, e domain.DomainEvent) error {
		return errors.New("boom")
	})
	d.Register(domain.EventTypeSessionStarted, func(ctx context.Context, e domain.DomainEvent) error {
		panic("much worse boom")
	})
	d.Register(domain.EventTypeSessionStarted, func(ctx context.Context, e domain.DomainEvent) error {
		mu.Lock()
		defer mu.Unlock()
		invoked = true
		return nil
	})

	// must not panic and must not skip the healthy handler
	d.Publish(context.Background(), startedEvent(t))
	assert.True(t, invoked)
}

func TestDisabledDispatcherDropsEvents(t *testing.T) {
	d := newTestDispatcher()

	var mu sync.Mutex
	count := 0
	d.Register(domain.EventTypeSessionStarted, func(ctx context.Context, e domain.DomainEvent) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return nil
	})

	d.SetEnabled(false)
	d.Publish(context.Background(), startedEvent(t))
	assert.Equal(t, 0, count)

	d.SetEnabled(true)
	d.Publish(context.Background(), startedEvent(t))
	assert.Equal(t, 1, count)
}

func TestPublishAllFansOut(t *testing.T) {
	d := newTestDispatcher()

	var mu sync.Mutex
	count := 0
	d.Register(domain.EventTypeSessionStarted, func(ctx context.Context, e domain.DomainEvent) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return nil
	})

	batch := []domain.DomainEvent{startedEvent(t), startedEvent(t), startedEvent(t)}
	d.PublishAll(context.Background(), batch)
	assert.Equal(t, 3, count)
}

func TestPublishWithNoHandlersIsNoop(t *testing.T) {
	d := newTestDispatcher()
	assert.NotPanics(t, func() {
		d.Publish(context.Background(), startedEvent(t))
	})
}
