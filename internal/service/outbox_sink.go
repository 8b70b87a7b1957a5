package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"taskhub/internal/notify"
	"taskhub/pkg/metrics"
	"taskhub/pkg/outbox"
)

// txSink writes planned notification events into the transactional outbox.
// Events become visible to the dispatcher only once the surrounding mutation
// commits, so a delivery failure can never roll back the mutation.
type txSink struct {
	repo          *outbox.Repository
	tx            pgx.Tx
	aggregateType string
	aggregateID   *int64
}

func newTxSink(repo *outbox.Repository, tx pgx.Tx, aggregateType string, aggregateID int64) *txSink {
	return &txSink{
		repo:          repo,
		tx:            tx,
		aggregateType: aggregateType,
		aggregateID:   &aggregateID,
	}
}

func (s *txSink) Notify(ctx context.Context, recipient int, kind notify.Kind, payload any) error {
	if err := outbox.InsertEventInTx(ctx, s.tx, s.repo, s.aggregateType, s.aggregateID, kind.RoutingKey(), payload); err != nil {
		return err
	}
	metrics.IncrementNotificationEmitted(string(kind))
	return nil
}

// emitAll pushes every planned event through the sink.
func emitAll(ctx context.Context, sink notify.Sink, events []notify.Event) error {
	for _, e := range events {
		if err := sink.Notify(ctx, e.Recipient, e.Kind, e.Payload); err != nil {
			return err
		}
	}
	return nil
}
