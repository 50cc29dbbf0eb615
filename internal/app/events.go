package app

import (
	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/events"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
	"github.com/saradorri/pokerledger/internal/infrastructure/notifier"
)

func (a *application) InitEventDispatcher(logger *logger.Logger) *events.Dispatcher {
	return events.NewDispatcher(logger)
}

func (a *application) InitWebhookNotifier(logger *logger.Logger) *notifier.WebhookNotifier {
	return notifier.NewWebhookNotifier(
		a.config.Notifier.URL,
		a.config.Notifier.APIKey,
		a.config.Notifier.MaxRetries,
		logger,
	)
}

// RegisterEventHandlers wires session-lifecycle events to the webhook
// notifier. The notifier is skipped entirely when no URL is configured.
func (a *application) RegisterEventHandlers(dispatcher *events.Dispatcher, webhook *notifier.WebhookNotifier) {
	if a.config.Notifier.URL == "" {
		return
	}

	for _, eventType := range []string{
		domain.EventTypeSessionStarted,
		domain.EventTypeSessionEnded,
		domain.EventTypeSessionCancelled,
		domain.EventTypeTransactionAdded,
	} {
		dispatcher.Register(eventType, webhook.Handle)
	}
}
