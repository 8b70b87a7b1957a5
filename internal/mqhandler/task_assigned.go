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

const handlerTaskAssigned = "task_assigned"

// TaskAssignedHandler consumes task.assigned events and stores an in-app
// notification for the new assignee.
type TaskAssignedHandler struct {
	notifications *repository.NotificationRepository
	deduper       *util.Deduper
	retries       *util.RetryCounter
	webhook       *WebhookSender
	logger        *zap.Logger
}

func NewTaskAssignedHandler(
	notifications *repository.NotificationRepository,
	deduper *util.Deduper,
	retries *util.RetryCounter,
	webhook *WebhookSender,
	logger *zap.Logger,
) *TaskAssignedHandler {
	return &TaskAssignedHandler{
		notifications: notifications,
		deduper:       deduper,
		retries:       retries,
		webhook:       webhook,
		logger:        logger,
	}
}

func (h *TaskAssignedHandler) Handle(ctx context.Context, data json.RawMessage) error {
	var p mqcontracts.TaskAssignedPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid task.assigned payload: %w", err)
	}

	// 按 event_id 去重，防止 MQ 重投导致重复通知
	if !h.deduper.AcquireOnce(ctx, handlerTaskAssigned, p.EventID) {
		return nil
	}

	n := &model.Notification{
		UserID:  p.AssignedTo,
		Type:    string(notify.KindTaskAssigned),
		Content: taskAssignedContent(&p),
	}
	if err := h.notifications.Insert(ctx, n); err != nil {
		return storeFailed(ctx, h.deduper, h.retries, h.logger, handlerTaskAssigned, p.EventID,
			fmt.Errorf("failed to store notification: %w", err))
	}
	storeSucceeded(ctx, h.retries, handlerTaskAssigned, p.EventID)

	h.logger.Info("Task assignment notification stored",
		zap.Int("notification_id", n.ID),
		zap.Int("user_id", p.AssignedTo),
		zap.Int("task_id", p.TaskID),
		zap.String("trace_id", p.TraceID),
	)

	h.webhook.Send(ctx, string(notify.KindTaskAssigned), p.AssignedTo, n.Content, p.TraceID)
	return nil
}
