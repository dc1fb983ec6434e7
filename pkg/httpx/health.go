package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// HealthChecker is satisfied by any dependency exposing a Ping method:
// pgxpool.Pool, cache.RedisClient, events.EventBus and workflows.TemporalClient.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Check is one named dependency probed by the health endpoint. An optional
// check reports its own state but never turns the service unavailable.
type Check struct {
	Name     string
	Checker  HealthChecker
	Optional bool
}

const healthTimeout = 2 * time.Second

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler probes every check concurrently. A failing required check
// answers 503 with status "unavailable"; a failing optional one answers 200
// with status "degraded". Checks with a nil Checker are skipped.
func HealthHandler(checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		var (
			mu   sync.Mutex
			resp = healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
			down bool
		)
		g, gctx := errgroup.WithContext(ctx)
		for _, c := range checks {
			if c.Checker == nil {
				continue
			}
			g.Go(func() error {
				err := c.Checker.Ping(gctx)
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					resp.Checks[c.Name] = "ok"
					return nil
				}
				resp.Checks[c.Name] = "unreachable"
				if c.Optional {
					if resp.Status == "ok" {
						resp.Status = "degraded"
					}
				} else {
					down = true
				}
				return nil
			})
		}
		_ = g.Wait()

		status := http.StatusOK
		if down {
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
