package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"taskhub/config"
	"taskhub/internal/handler"
	"taskhub/internal/httpserver"
	"taskhub/internal/repository"
	"taskhub/internal/service"
	"taskhub/pkg/db"
	"taskhub/pkg/logger"
	"taskhub/pkg/mq"
	"taskhub/pkg/outbox"
)

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

	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("Failed to connect to MQ", zap.Error(err))
	}
	defer publisher.Close()

	// Outbox dispatcher：轮询 outbox 表并把已提交的事件发布到 MQ
	outboxRepo := outbox.NewRepository(dbpool)
	dispatcher := outbox.NewDispatcher(outboxRepo, publisher, log)
	go dispatcher.Start(ctx)

	userRepo := repository.NewUserRepository(dbpool)
	projectRepo := repository.NewProjectRepository(dbpool, log)
	taskRepo := repository.NewTaskRepository(dbpool, log)
	postRepo := repository.NewPostRepository(dbpool)
	notificationRepo := repository.NewNotificationRepository(dbpool)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret)
	projectService := service.NewProjectService(dbpool, projectRepo, taskRepo, log)
	taskService := service.NewTaskService(dbpool, taskRepo, projectRepo, log)
	postService := service.NewPostService(postRepo)
	dashboardService := service.NewDashboardService(userRepo, projectRepo, taskRepo, postRepo, notificationRepo)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		DB:        dbpool,
		Publisher: publisher,
		UserRepo:  userRepo,
		JWTSecret: cfg.JWT.Secret,

		Auth:          handler.NewAuthHandler(authService, log),
		Users:         handler.NewUserHandler(userRepo, log),
		Projects:      handler.NewProjectHandler(projectService, log),
		Tasks:         handler.NewTaskHandler(taskService, log),
		Posts:         handler.NewPostHandler(postService, log),
		Notifications: handler.NewNotificationHandler(notificationRepo, log),
		Dashboard:     handler.NewDashboardHandler(dashboardService, log),
		Outbox:        handler.NewOutboxHandler(outboxRepo, log),

		Logger: log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("API server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
}
