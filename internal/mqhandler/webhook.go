package mqhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"taskhub/pkg/circuitbreaker"
	"taskhub/pkg/metrics"
)

// WebhookSender forwards processed notifications to an external endpoint.
// Delivery is best-effort and guarded by a circuit breaker so a dead
// endpoint cannot stall message consumption.
type WebhookSender struct {
	url     string
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewWebhookSender(url string, logger *zap.Logger) *WebhookSender {
	return &WebhookSender{
		url:     url,
		client:  &http.Client{Timeout: 5 * time.Second},
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
		logger:  logger,
	}
}

type webhookPayload struct {
	Kind    string `json:"kind"`
	UserID  int    `json:"user_id"`
	Content string `json:"content"`
	TraceID string `json:"trace_id,omitempty"`
}

// Send posts the notification to the webhook URL. A missing URL means the
// webhook is disabled and the call is a no-op.
func (w *WebhookSender) Send(ctx context.Context, kind string, userID int, content, traceID string) {
	if w.url == "" {
		return
	}

	body, err := json.Marshal(webhookPayload{
		Kind:    kind,
		UserID:  userID,
		Content: content,
		TraceID: traceID,
	})
	if err != nil {
		metrics.IncrementWebhookDelivery("failed")
		return
	}

	err = w.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := w.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			return fmt.Errorf("webhook returned status %d", resp.StatusCode)
		}
		return nil
	})

	switch {
	case err == circuitbreaker.ErrCircuitBreakerOpen:
		metrics.IncrementWebhookDelivery("skipped")
		w.logger.Warn("Webhook delivery skipped, circuit breaker open",
			zap.String("kind", kind),
		)
	case err != nil:
		metrics.IncrementWebhookDelivery("failed")
		w.logger.Warn("Webhook delivery failed",
			zap.String("kind", kind),
			zap.Error(err),
		)
	default:
		metrics.IncrementWebhookDelivery("success")
	}
}
