package app

import (
	"github.com/gorilla/sessions"

	"github.com/tocampus/governance/pkg/cache"
	"github.com/tocampus/governance/pkg/config"
	"github.com/tocampus/governance/pkg/database"
	"github.com/tocampus/governance/pkg/events"
	"github.com/tocampus/governance/pkg/logger"
	"github.com/tocampus/governance/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each bounded context's route registration during startup.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context methods
// so trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "content approved", "content_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient // nil unless TEMPORAL_ENABLED
	SessionStore   sessions.Store            // Redis-backed session store; nil in worker process
}
