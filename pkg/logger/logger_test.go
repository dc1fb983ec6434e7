package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/tocampus/governance/pkg/config"
)

func newTestLogger(buf *bytes.Buffer) Logger {
	return newLogger(buf, &config.Config{LogLevel: "debug", ServiceName: "governance", Environment: "testing"})
}

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	return tp
}

func parseLastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var last string
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			last = lines[i]
			break
		}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("failed to parse log line %q: %v", last, err)
	}
	return m
}

func TestContextHandler_TraceFields(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	tests := []struct {
		name      string
		withSpan  bool
		log       func(Logger, context.Context)
		wantTrace bool
		wantAttrs map[string]any
	}{
		{
			name:      "info with span",
			withSpan:  true,
			log:       func(l Logger, ctx context.Context) { l.InfoContext(ctx, "submitted") },
			wantTrace: true,
		},
		{
			name: "info without span",
			log:  func(l Logger, ctx context.Context) { l.InfoContext(ctx, "submitted") },
		},
		{
			name:     "error keeps caller attributes",
			withSpan: true,
			log: func(l Logger, ctx context.Context) {
				l.ErrorContext(ctx, "audit write failed", "error", errors.New("boom"), "content_id", "123")
			},
			wantTrace: true,
			wantAttrs: map[string]any{"error": "boom", "content_id": "123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := context.Background()
			if tt.withSpan {
				var span trace.Span
				ctx, span = otel.Tracer("test").Start(ctx, tt.name)
				defer span.End()
			}
			tt.log(newTestLogger(&buf), ctx)

			entry := parseLastLine(t, &buf)
			_, hasTrace := entry["trace_id"]
			_, hasSpan := entry["span_id"]
			if hasTrace != tt.wantTrace || hasSpan != tt.wantTrace {
				t.Errorf("trace_id present = %v, span_id present = %v, want %v", hasTrace, hasSpan, tt.wantTrace)
			}
			for k, want := range tt.wantAttrs {
				if entry[k] != want {
					t.Errorf("%s = %v, want %v", k, entry[k], want)
				}
			}
		})
	}
}

func TestMiddleware_InjectsRequestID(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	var buf bytes.Buffer
	log := newTestLogger(&buf)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(Middleware(log))
	r.Post("/api/content", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/content", http.NoBody)
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := parseLastLine(t, &buf)
	if _, ok := entry["request_id"]; !ok {
		t.Error("expected request_id in request log")
	}
	if entry["method"] != "POST" || entry["status"] != float64(http.StatusCreated) {
		t.Errorf("method = %v, status = %v", entry["method"], entry["status"])
	}
}

func TestContextHandler_NestedSpans(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	var buf bytes.Buffer
	log := newTestLogger(&buf)
	tracer := otel.Tracer("test")

	ctx, parent := tracer.Start(context.Background(), "parent")
	log.InfoContext(ctx, "parent log")
	parentEntry := parseLastLine(t, &buf)
	buf.Reset()

	ctx, child := tracer.Start(ctx, "child")
	log.InfoContext(ctx, "child log")
	childEntry := parseLastLine(t, &buf)

	child.End()
	parent.End()

	if parentEntry["trace_id"] != childEntry["trace_id"] {
		t.Errorf("expected same trace_id: %v vs %v", parentEntry["trace_id"], childEntry["trace_id"])
	}
	if parentEntry["span_id"] == childEntry["span_id"] {
		t.Error("expected different span_ids for parent and child")
	}
}

func TestNew_BindsServiceAndEnvironment(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf).Info("startup")

	entry := parseLastLine(t, &buf)
	if entry["service"] != "governance" || entry["env"] != "testing" {
		t.Errorf("service = %v, env = %v", entry["service"], entry["env"])
	}
}

func TestWithContextAttrs_Accumulates(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	ctx := WithContextAttrs(context.Background(), "user_id", "u-1")
	ctx = WithContextAttrs(ctx, "content_id", "c-1")
	log.InfoContext(ctx, "approved")

	entry := parseLastLine(t, &buf)
	if entry["user_id"] != "u-1" || entry["content_id"] != "c-1" {
		t.Errorf("entry = %v", entry)
	}

	log.InfoContext(context.Background(), "unbound")
	if _, ok := parseLastLine(t, &buf)["user_id"]; ok {
		t.Error("user_id leaked into an unrelated context")
	}
}

func TestMiddleware_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/api/content", http.StatusCreated, "INFO"},
		{"/api/content", http.StatusConflict, "WARN"},
		{"/api/content", http.StatusInternalServerError, "ERROR"},
		{"/health", http.StatusOK, "DEBUG"},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			h := Middleware(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			entry := parseLastLine(t, &buf)
			if entry["level"] != tt.want {
				t.Errorf("level = %v, want %s", entry["level"], tt.want)
			}
		})
	}
}

func TestRecovery_WritesJSON500(t *testing.T) {
	var buf bytes.Buffer
	h := Recovery(newTestLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/content", http.NoBody))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error"`) {
		t.Errorf("body = %q", w.Body.String())
	}
	if entry := parseLastLine(t, &buf); entry["msg"] != "panic recovered" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
