package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Metadata keys set on every governance message.
const (
	MetaEventID      = "event_id"
	MetaEventVersion = "event_version"
)

// StartForwarder runs the daemon moving committed outbox messages onto their
// target topics. It returns once the forwarder is running; the daemon stops
// when ctx is cancelled or the bus is closed.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.opts.Outbox {
		return fmt.Errorf("events: bus was built without an outbox")
	}
	if q.fwd != nil {
		return fmt.Errorf("events: forwarder already started")
	}

	outboxSub, err := watermillsql.NewSubscriber(q.db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    "governance-forwarder",
	}, q.wlog)
	if err != nil {
		return fmt.Errorf("events: outbox subscriber: %w", err)
	}
	targetPub, err := newSQLPublisher(q.db, q.wlog, true)
	if err != nil {
		_ = outboxSub.Close()
		return err
	}

	fwd, err := forwarder.NewForwarder(outboxSub, targetPub, q.wlog, forwarder.Config{
		ForwarderTopic: outboxTopic,
	})
	if err != nil {
		_ = targetPub.Close()
		_ = outboxSub.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		q.log.InfoContext(ctx, "events: forwarder running", "outbox_topic", outboxTopic)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}

// PublishTx publishes payload as JSON to topic inside tx, so the event
// commits or rolls back with the state change. eventID becomes the message
// UUID and lets consumers drop duplicates.
func (q *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, topic, eventID string, version int, payload any) error {
	msg, err := NewJSONMessage(ctx, eventID, version, payload)
	if err != nil {
		return err
	}
	// Tables exist once the bus is built, so the tx publisher skips schema setup.
	pub, err := watermillsql.NewPublisher(tx, watermillsql.PublisherConfig{
		SchemaAdapter: watermillsql.DefaultPostgreSQLSchema{},
	}, q.wlog)
	if err != nil {
		return fmt.Errorf("events: tx publisher: %w", err)
	}
	if err := wrapOutbox(pub, q.opts.Outbox).Publish(topic, msg); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish %s to %s: %w", eventID, topic, err)
	}
	return nil
}

// Publish sends msgs to topic outside any transaction. The trace context of
// ctx is added to each message.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		injectTrace(ctx, msg)
	}
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// NewJSONMessage builds a message with payload encoded as JSON, the event ID
// and version in metadata, and the trace context of ctx. An empty eventID
// gets a generated one.
func NewJSONMessage(ctx context.Context, eventID string, version int, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: marshal payload: %w", err)
	}
	if eventID == "" {
		eventID = watermill.NewUUID()
	}
	msg := message.NewMessage(eventID, body)
	msg.Metadata.Set(MetaEventID, eventID)
	msg.Metadata.Set(MetaEventVersion, strconv.Itoa(version))
	injectTrace(ctx, msg)
	return msg, nil
}

func injectTrace(ctx context.Context, msg *message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}
