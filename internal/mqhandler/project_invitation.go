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

const handlerProjectInvitation = "project_invitation"

// ProjectInvitationHandler consumes project.invitation events and stores a
// notification for the invited user.
type ProjectInvitationHandler struct {
	notifications *repository.NotificationRepository
	deduper       *util.Deduper
	retries       *util.RetryCounter
	webhook       *WebhookSender
	logger        *zap.Logger
}

func NewProjectInvitationHandler(
	notifications *repository.NotificationRepository,
	deduper *util.Deduper,
	retries *util.RetryCounter,
	webhook *WebhookSender,
	logger *zap.Logger,
) *ProjectInvitationHandler {
	return &ProjectInvitationHandler{
		notifications: notifications,
		deduper:       deduper,
		retries:       retries,
		webhook:       webhook,
		logger:        logger,
	}
}

func (h *ProjectInvitationHandler) Handle(ctx context.Context, data json.RawMessage) error {
	var p mqcontracts.ProjectInvitationPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid project.invitation payload: %w", err)
	}

	if !h.deduper.AcquireOnce(ctx, handlerProjectInvitation, p.EventID) {
		return nil
	}

	n := &model.Notification{
		UserID:  p.Recipient,
		Type:    string(notify.KindProjectInvitation),
		Content: projectInvitationContent(&p),
	}
	if err := h.notifications.Insert(ctx, n); err != nil {
		return storeFailed(ctx, h.deduper, h.retries, h.logger, handlerProjectInvitation, p.EventID,
			fmt.Errorf("failed to store notification: %w", err))
	}
	storeSucceeded(ctx, h.retries, handlerProjectInvitation, p.EventID)

	h.logger.Info("Project invitation notification stored",
		zap.Int("notification_id", n.ID),
		zap.Int("user_id", p.Recipient),
		zap.Int("project_id", p.ProjectID),
		zap.String("trace_id", p.TraceID),
	)

	h.webhook.Send(ctx, string(notify.KindProjectInvitation), p.Recipient, n.Content, p.TraceID)
	return nil
}
