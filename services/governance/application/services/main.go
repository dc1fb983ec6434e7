package services

import (
	"time"

	"github.com/tocampus/governance/pkg/app"
	pkgcache "github.com/tocampus/governance/pkg/cache"
	"github.com/tocampus/governance/pkg/logger"
	"github.com/tocampus/governance/pkg/workflows"
	"github.com/tocampus/governance/services/governance/domain/repositories"
	domainsvcs "github.com/tocampus/governance/services/governance/domain/services"
	"github.com/tocampus/governance/services/governance/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Pipeline *Pipeline
	Reader   *ContentReader
}

// Deps are the collaborators Compose wires together. Shares, Cache and
// Metrics may be nil.
type Deps struct {
	Store             repositories.ContentStore
	Identity          repositories.IdentityProvider
	Notifications     repositories.NotificationSink
	Audit             repositories.AuditSink
	Shares            repositories.ShareRequester
	Cache             ContentCache
	Rules             domainsvcs.PolicyRules
	AutoApprove       bool
	FanOutConcurrency int
	Metrics           *Metrics
	Clock             func() time.Time
	Log               logger.Logger
}

// New wires all governance services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	var outbox postgres.OutboxPublisher
	if a.EventBus != nil {
		outbox = a.EventBus
	}
	deps := Deps{
		Store:         postgres.NewContentRepository(a.Db, outbox),
		Identity:      postgres.NewIdentityRepository(a.Db),
		Notifications: postgres.NewNotificationRepository(a.Db),
		Audit:         postgres.NewAuditRepository(a.Db),
		Rules:         domainsvcs.DefaultPolicyRules(),
		Log:           a.Logger,
	}
	if cfg := a.Config; cfg != nil {
		if len(cfg.ProhibitedTerms) > 0 {
			deps.Rules.ProhibitedTerms = cfg.ProhibitedTerms
		}
		deps.AutoApprove = cfg.AutoApprove
		deps.FanOutConcurrency = cfg.FanOutConcurrency
		if a.TemporalClient != nil {
			deps.Shares = workflows.NewShareRequester(a.TemporalClient, cfg.ShareTaskQueue, a.Logger)
		}
	}
	if a.Redis != nil {
		deps.Cache = pkgcache.NewContentCache(a.Redis)
	}

	m, err := NewMetrics(nil)
	if err != nil {
		a.Logger.Warn("governance metrics disabled", "error", err)
	} else {
		deps.Metrics = m
	}
	return Compose(deps)
}

// Compose builds the services from explicit collaborators.
func Compose(d Deps) *Services {
	opts := []WorkflowOption{WithAutoApprove(d.AutoApprove), WithMetrics(d.Metrics)}
	if d.Clock != nil {
		opts = append(opts, WithClock(d.Clock))
	}
	workflow := NewApprovalWorkflow(d.Store, d.Identity, domainsvcs.NewPolicyValidator(d.Rules), d.Log, opts...)
	recorder := NewAuditRecorder(d.Audit, d.Log)
	dispatcher := NewNotificationDispatcher(d.Identity, d.Notifications, d.Log, d.Metrics, d.FanOutConcurrency)

	return &Services{
		Pipeline: NewPipeline(workflow, recorder, dispatcher, d.Shares, d.Metrics, d.Log),
		Reader:   NewContentReader(d.Store, d.Identity, d.Cache, d.Log),
	}
}
