package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"taskhub/config"
	mqcontracts "taskhub/contracts/mq"
	"taskhub/internal/mqhandler"
	"taskhub/internal/repository"
	"taskhub/pkg/db"
	"taskhub/pkg/logger"
	"taskhub/pkg/mq"
	"taskhub/pkg/redis"
	"taskhub/pkg/util"
)

// 去重窗口：同一事件在该时间内只处理一次
const dedupTTL = 24 * time.Hour

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbpool, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbpool.Close()

	rdb := redis.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	notificationRepo := repository.NewNotificationRepository(dbpool)
	deduper := util.NewDeduper(rdb, dedupTTL, log)
	retries := util.NewRetryCounter(rdb, dedupTTL)
	webhook := mqhandler.NewWebhookSender(cfg.Webhook.URL, log)

	consumers := []struct {
		queue      string
		routingKey string
		handler    mq.MessageHandler
	}{
		{
			queue:      "notifications.task_assigned",
			routingKey: mqcontracts.RoutingKeyTaskAssigned,
			handler:    mqhandler.NewTaskAssignedHandler(notificationRepo, deduper, retries, webhook, log).Handle,
		},
		{
			queue:      "notifications.task_updated",
			routingKey: mqcontracts.RoutingKeyTaskUpdated,
			handler:    mqhandler.NewTaskUpdatedHandler(notificationRepo, deduper, retries, webhook, log).Handle,
		},
		{
			queue:      "notifications.project_invitation",
			routingKey: mqcontracts.RoutingKeyProjectInvitation,
			handler:    mqhandler.NewProjectInvitationHandler(notificationRepo, deduper, retries, webhook, log).Handle,
		},
	}

	for _, c := range consumers {
		consumer, err := mq.NewConsumer(cfg.MQ.URL, c.queue, c.routingKey, log)
		if err != nil {
			log.Fatal("Failed to create consumer",
				zap.String("queue", c.queue),
				zap.Error(err),
			)
		}
		defer consumer.Close()

		consumer.SetHandler(c.handler)
		go func(consumer *mq.Consumer, queue string) {
			if err := consumer.StartConsuming(); err != nil {
				log.Error("Consumer stopped",
					zap.String("queue", queue),
					zap.Error(err),
				)
			}
		}(consumer, c.queue)
	}

	log.Info("Worker started", zap.Int("consumers", len(consumers)))

	<-ctx.Done()
	log.Info("Worker shutting down")
}
