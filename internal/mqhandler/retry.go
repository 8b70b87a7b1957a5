package mqhandler

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"taskhub/pkg/util"
)

// maxStoreAttempts caps how often a failed notification insert is retried
// through MQ redelivery before the event is dropped.
const maxStoreAttempts = 5

func retryKey(handler, eventID string) string {
	return fmt.Sprintf("retry:%s:%s", handler, eventID)
}

// storeSucceeded clears the redelivery counter once the insert landed, so an
// event id can be retried from scratch if it ever reappears.
func storeSucceeded(ctx context.Context, retries *util.RetryCounter, handler, eventID string) {
	_ = retries.Reset(ctx, retryKey(handler, eventID))
}

// storeFailed releases the dedup key so the redelivered event is processed
// again, and counts the attempt. Once the cap is reached the event is
// dropped: returning nil acks the message instead of requeueing it.
func storeFailed(
	ctx context.Context,
	deduper *util.Deduper,
	retries *util.RetryCounter,
	logger *zap.Logger,
	handler, eventID string,
	cause error,
) error {
	deduper.Release(ctx, handler, eventID)

	attempts, err := retries.IncrementAndGet(ctx, retryKey(handler, eventID))
	if err != nil {
		// Redis 不可用时按普通失败处理，交给 MQ 重投
		return cause
	}

	if attempts >= maxStoreAttempts {
		logger.Error("Dropping event after repeated failures",
			zap.String("handler", handler),
			zap.String("event_id", eventID),
			zap.Int64("attempts", attempts),
			zap.Error(cause),
		)
		return nil
	}

	return cause
}
