// Package workflows starts the Temporal workflows governance hands work to.
// Only the client side lives here; the workers executing ShareContent belong
// to the social posting service.
package workflows

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
	temporallog "go.temporal.io/sdk/log"

	"github.com/tocampus/governance/pkg/logger"
)

// TemporalClient is a connected Temporal client plus the namespace it was
// dialed for.
type TemporalClient struct {
	Client    client.Client
	Namespace string
	log       logger.Logger
}

// NewTemporalClient dials hostPort with tracing propagated into workflow
// headers. SDK logs go through log tagged component=temporal.
func NewTemporalClient(ctx context.Context, hostPort, namespace string, log logger.Logger) (*TemporalClient, error) {
	tracing, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: otel.Tracer("governance/temporal"),
	})
	if err != nil {
		return nil, fmt.Errorf("temporal tracing interceptor: %w", err)
	}

	c, err := client.DialContext(ctx, client.Options{
		HostPort:     hostPort,
		Namespace:    namespace,
		Logger:       temporallog.NewStructuredLogger(log.ToSlog().With("component", "temporal")),
		Interceptors: []interceptor.ClientInterceptor{tracing},
	})
	if err != nil {
		return nil, fmt.Errorf("dial temporal at %s: %w", hostPort, err)
	}

	log.Info("temporal client connected", "host_port", hostPort, "namespace", namespace)
	return &TemporalClient{Client: c, Namespace: namespace, log: log}, nil
}

// Ping asks the frontend service for its health. It satisfies
// httpx.HealthChecker.
func (tc *TemporalClient) Ping(ctx context.Context) error {
	if _, err := tc.Client.CheckHealth(ctx, &client.CheckHealthRequest{}); err != nil {
		return fmt.Errorf("temporal health: %w", err)
	}
	return nil
}

// Close releases the connection.
func (tc *TemporalClient) Close() {
	tc.Client.Close()
	tc.log.Info("temporal client closed")
}
