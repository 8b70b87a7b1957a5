package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	mqcontracts "taskhub/contracts/mq"
	"taskhub/internal/model"
	"taskhub/internal/notify"
	"taskhub/internal/repository"
	"taskhub/pkg/util"
)

const handlerTaskUpdated = "task_updated"

// TaskUpdatedHandler consumes task.updated events and stores a change
// summary notification for the recipient named in the payload.
type TaskUpdatedHandler struct {
	notifications *repository.NotificationRepository
	deduper       *util.Deduper
	retries       *util.RetryCounter
	webhook       *WebhookSender
	logger        *zap.Logger
}

func NewTaskUpdatedHandler(
	notifications *repository.NotificationRepository,
	deduper *util.Deduper,
	retries *util.RetryCounter,
	webhook *WebhookSender,
	logger *zap.Logger,
) *TaskUpdatedHandler {
	return &TaskUpdatedHandler{
		notifications: notifications,
		deduper:       deduper,
		retries:       retries,
		webhook:       webhook,
		logger:        logger,
	}
}

func (h *TaskUpdatedHandler) Handle(ctx context.Context, data json.RawMessage) error {
	var p mqcontracts.TaskUpdatedPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid task.updated payload: %w", err)
	}

	if !h.deduper.AcquireOnce(ctx, handlerTaskUpdated, p.EventID) {
		return nil
	}

	n := &model.Notification{
		UserID:  p.Recipient,
		Type:    string(notify.KindTaskUpdated),
		Content: taskUpdatedContent(&p),
	}
	if err := h.notifications.Insert(ctx, n); err != nil {
		return storeFailed(ctx, h.deduper, h.retries, h.logger, handlerTaskUpdated, p.EventID,
			fmt.Errorf("failed to store notification: %w", err))
	}
	storeSucceeded(ctx, h.retries, handlerTaskUpdated, p.EventID)

	h.logger.Info("Task update notification stored",
		zap.Int("notification_id", n.ID),
		zap.Int("user_id", p.Recipient),
		zap.Int("task_id", p.TaskID),
		zap.Int("changed_fields", len(p.Changes)),
		zap.String("trace_id", p.TraceID),
	)

	h.webhook.Send(ctx, string(notify.KindTaskUpdated), p.Recipient, n.Content, p.TraceID)
	return nil
}
