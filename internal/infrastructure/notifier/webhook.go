package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// WebhookNotifier posts session-lifecycle events to an external webhook.
// It runs as a dispatcher handler, so delivery failures are logged and
// contained; the originating operation has already committed.
type WebhookNotifier struct {
	url    string
	apiKey string
	client *retryablehttp.Client
	logger *logger.Logger
}

// NewWebhookNotifier creates a new webhook notifier
func NewWebhookNotifier(url, apiKey string, maxRetries int, logger *logger.Logger) *WebhookNotifier {
	client := retryablehttp.NewClient()
	client.RetryMax = maxRetries
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil

	return &WebhookNotifier{
		url:    url,
		apiKey: apiKey,
		client: client,
		logger: logger,
	}
}

// Handle implements domain.EventHandler
func (n *WebhookNotifier) Handle(ctx context.Context, event domain.DomainEvent) error {
	payload := n.buildPayload(event)
	if payload == nil {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, n.url, body)
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("x-api-key", n.apiKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return domain.NewAppError(domain.ErrCodeNotifierError, "Webhook delivery failed", http.StatusServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return domain.NewAppError(domain.ErrCodeNotifierError,
			fmt.Sprintf("Webhook returned status %d: %s", resp.StatusCode, string(respBody)),
			http.StatusServiceUnavailable, nil)
	}

	n.logger.Debug("Webhook delivered",
		zap.String("eventID", event.EventID()),
		zap.String("eventType", event.EventType()))
	return nil
}

func (n *WebhookNotifier) buildPayload(event domain.DomainEvent) map[string]interface{} {
	payload := map[string]interface{}{
		"event_id":    event.EventID(),
		"event_type":  event.EventType(),
		"occurred_at": event.OccurredAt().Format(time.RFC3339),
	}

	switch e := event.(type) {
	case domain.SessionStarted:
		payload["session_id"] = e.SessionID.String()
		payload["player_id"] = e.PlayerID.String()
		payload["location"] = e.Location
		payload["stakes"] = e.Stakes.String()
	case domain.SessionEnded:
		payload["session_id"] = e.SessionID.String()
		payload["player_id"] = e.PlayerID.String()
		payload["net_result"] = e.NetResult.Amount().String()
		payload["currency"] = e.NetResult.Currency()
		payload["duration_hours"] = e.Duration.Hours()
	case domain.SessionCancelled:
		payload["session_id"] = e.SessionID.String()
		payload["player_id"] = e.PlayerID.String()
		payload["reason"] = e.Reason
	case domain.TransactionAdded:
		payload["transaction_id"] = e.TransactionID.String()
		payload["session_id"] = e.SessionID.String()
		payload["player_id"] = e.PlayerID.String()
		payload["transaction_type"] = string(e.Type)
		payload["amount"] = e.Amount.Amount().String()
		payload["currency"] = e.Amount.Currency()
	default:
		return nil
	}
	return payload
}
