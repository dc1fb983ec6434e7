package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tocampus/governance/pkg/logger"
)

// Handler processes one message. Returning nil acks it.
type Handler func(ctx context.Context, msg *message.Message) error

const errChanSize = 100

// Subscribe runs handler for each message on topic until ctx is cancelled
// or the bus is closed. Each message is handled inside a consumer span
// linked to the publisher's trace.
//
// A handler error is retried with exponential backoff. When every attempt
// fails the message is nacked and the last error is sent on the returned
// channel, which the caller must drain:
//
//	errCh, err := bus.Subscribe(ctx, topic, handler)
//	go func() { for err := range errCh { log.ErrorContext(ctx, "subscriber error", "error", err) } }()
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	msgs, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errChanSize)
	tracer := otel.Tracer("governance/events")

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range msgs {
			msgCtx, span := tracer.Start(extractTrace(ctx, msg), "consume "+topic,
				trace.WithSpanKind(trace.SpanKindConsumer),
				trace.WithAttributes(
					attribute.String("messaging.destination.name", topic),
					attribute.String("messaging.message.id", msg.UUID),
				),
			)
			msgCtx = logger.WithContextAttrs(msgCtx, "topic", topic, "event_id", msg.UUID)

			err := retryHandler(msgCtx, msg, handler, q.opts.HandlerAttempts, q.opts.RetryBaseDelay, q.log)
			if err == nil {
				msg.Ack()
				span.End()
				continue
			}

			span.RecordError(err)
			span.SetStatus(codes.Error, "handler failed")
			span.End()
			msg.Nack()
			select {
			case errCh <- err:
			default:
				q.log.ErrorContext(msgCtx, "events: error channel full, dropping error", "error", err)
			}
		}
	}()

	return errCh, nil
}

// retryHandler runs handler up to attempts times, doubling the delay from
// baseDelay between tries. A cancelled ctx stops the retries early.
func retryHandler(ctx context.Context, msg *message.Message, handler Handler, attempts int, baseDelay time.Duration, log logger.Logger) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = baseDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0.1
	policy.MaxInterval = 30 * baseDelay

	tries := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		tries++
		return struct{}{}, handler(ctx, msg)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.WarnContext(ctx, "events: handler failed, retrying",
				"attempt", tries,
				"max_attempts", attempts,
				"next_delay", next,
				"error", err,
			)
		}),
	)
	if err != nil {
		return fmt.Errorf("events: handler failed after %d attempts: %w", tries, err)
	}
	return nil
}
