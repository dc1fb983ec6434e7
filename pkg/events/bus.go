// Package events carries governance domain events over Postgres with
// Watermill's SQL transport.
//
// The API publishes through a transactional outbox: PublishTx writes the
// message in the same transaction as the state change, and a forwarder
// moves committed messages onto their real topic. The worker subscribes
// in a consumer group, so each message is handled by one worker instance.
//
// Handlers must be idempotent. A failing handler is retried with
// exponential backoff; after the last attempt the message is nacked and
// redelivered by the subscriber.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tocampus/governance/pkg/config"
	"github.com/tocampus/governance/pkg/logger"
)

const (
	outboxTopic     = "governance_outbox"
	drainTimeout    = 30 * time.Second
	defaultAttempts = 3
)

// Options selects how a process uses the bus.
type Options struct {
	// Outbox routes every publish through the forwarder queue. Call
	// StartForwarder once the bus is built.
	Outbox bool
	// ConsumerGroup shares delivery across instances. Defaults to
	// "<service>-consumer".
	ConsumerGroup string
	// PollInterval is how often the subscriber polls for new rows.
	// Zero keeps the Watermill default.
	PollInterval time.Duration
	// HandlerAttempts is how many times Subscribe runs a handler before
	// nacking. Defaults to 3.
	HandlerAttempts int
	// RetryBaseDelay is the first backoff delay between attempts.
	// Defaults to one second.
	RetryBaseDelay time.Duration
}

func (o Options) withDefaults(serviceName string) Options {
	if o.ConsumerGroup == "" {
		o.ConsumerGroup = serviceName + "-consumer"
	}
	if o.HandlerAttempts <= 0 {
		o.HandlerAttempts = defaultAttempts
	}
	if o.RetryBaseDelay <= 0 {
		o.RetryBaseDelay = time.Second
	}
	return o
}

// EventBus publishes and subscribes to governance topics stored in Postgres.
type EventBus struct {
	opts       Options
	db         *sql.DB
	wlog       watermill.LoggerAdapter
	publisher  message.Publisher
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	log        logger.Logger
	wg         sync.WaitGroup
}

// NewEventBus opens its own database handle on cfg.DatabaseURL and prepares
// the Watermill publisher and subscriber. Schema tables are created on first
// use.
func NewEventBus(cfg *config.Config, log logger.Logger, opts Options) (*EventBus, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}
	bus, err := newEventBus(db, log, opts.withDefaults(cfg.ServiceName))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return bus, nil
}

func newEventBus(db *sql.DB, log logger.Logger, opts Options) (*EventBus, error) {
	wlog := watermill.NewSlogLogger(log.ToSlog().With("component", "watermill"))

	pub, err := newSQLPublisher(db, wlog, true)
	if err != nil {
		return nil, err
	}

	sub, err := watermillsql.NewSubscriber(db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    opts.ConsumerGroup,
		PollInterval:     opts.PollInterval,
	}, wlog)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	return &EventBus{
		opts:       opts,
		db:         db,
		wlog:       wlog,
		publisher:  wrapOutbox(pub, opts.Outbox),
		subscriber: sub,
		log:        log,
	}, nil
}

func newSQLPublisher(db *sql.DB, wlog watermill.LoggerAdapter, initSchema bool) (*watermillsql.Publisher, error) {
	pub, err := watermillsql.NewPublisher(db, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: initSchema,
	}, wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	return pub, nil
}

func wrapOutbox(pub message.Publisher, outbox bool) message.Publisher {
	if !outbox {
		return pub
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: outboxTopic})
}

// Ping satisfies httpx.HealthChecker.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops the subscriber and forwarder, waits for in-flight handlers,
// then releases the publisher and database handle.
func (q *EventBus) Close() error {
	var errs []error
	if err := q.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close subscriber: %w", err))
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: close forwarder: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(drainTimeout):
		q.log.Error("events: in-flight handlers still running at shutdown", "waited", drainTimeout)
	}

	if err := q.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close publisher: %w", err))
	}
	if err := q.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close db: %w", err))
	}
	return errors.Join(errs...)
}
