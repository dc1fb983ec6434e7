package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/tocampus/governance/pkg/app"
	"github.com/tocampus/governance/pkg/cache"
	"github.com/tocampus/governance/pkg/config"
	"github.com/tocampus/governance/pkg/database"
	"github.com/tocampus/governance/pkg/events"
	"github.com/tocampus/governance/pkg/logger"
	"github.com/tocampus/governance/pkg/telemetry"
	appsvcs "github.com/tocampus/governance/services/governance/application/services"
	govevents "github.com/tocampus/governance/services/governance/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log, events.Options{ConsumerGroup: cfg.ServiceName + "-worker"})
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}
	svcs := appsvcs.New(appConfig)

	if err := registerSubscribers(ctx, appConfig, svcs.Reader); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// contentRefresher reloads one item into the read model cache.
type contentRefresher interface {
	Refresh(ctx context.Context, contentID uuid.UUID) error
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application, reader contentRefresher) error {
	handler := handleContentTransitioned(reader, a.Logger)
	for _, topic := range govevents.Topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}()
	}

	a.Logger.Info("event subscribers registered", "topics", govevents.Topics)
	return nil
}

// handleContentTransitioned returns a handler for every content.* topic.
// Handlers must be idempotent; EventBus retries up to 3x on failure.
// The cache only accepts newer versions, so redelivery cannot roll it back.
func handleContentTransitioned(reader contentRefresher, log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt govevents.ContentTransitionedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return fmt.Errorf("decode content event %s: %w", msg.UUID, err)
		}
		if evt.ContentID == uuid.Nil {
			log.WarnContext(ctx, "content event without content id", "message_id", msg.UUID)
			return nil
		}

		if err := reader.Refresh(ctx, evt.ContentID); err != nil {
			// Cache refresh is best-effort; the reader falls back to the store.
			log.WarnContext(ctx, "content cache refresh failed",
				"content_id", evt.ContentID,
				"action", evt.Action,
				"error", err,
			)
			return nil
		}
		log.InfoContext(ctx, "content cache refreshed",
			"content_id", evt.ContentID,
			"action", evt.Action,
			"content_version", evt.ContentVersion,
		)
		return nil
	}
}
