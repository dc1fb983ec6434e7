package logger

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/tocampus/governance/pkg/config"
)

// Logger is the project-wide logging interface. Components receive one at
// construction and use the Context variants on request paths so request and
// trace identifiers travel with every line.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	DebugContext(ctx context.Context, msg string, args ...any)
	// With returns a new Logger with the given key-value pairs bound as attributes.
	With(args ...any) Logger
	// ToSlog returns the underlying *slog.Logger for third-party libraries.
	ToSlog() *slog.Logger
}

// New returns a JSON Logger on stdout. Every record carries the service name
// and environment, plus trace_id, span_id, request_id and any attributes
// bound with WithContextAttrs when the context has them.
func New(cfg *config.Config) Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.Config) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	sl := slog.New(&contextHandler{slog.NewJSONHandler(w, opts)})
	if cfg.ServiceName != "" {
		sl = sl.With("service", cfg.ServiceName)
	}
	if cfg.Environment != "" {
		sl = sl.With("env", cfg.Environment)
	}
	return &slogLogger{Logger: sl}
}

type slogLogger struct {
	*slog.Logger
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{Logger: l.Logger.With(args...)}
}

func (l *slogLogger) ToSlog() *slog.Logger {
	return l.Logger
}

type ctxAttrsKey struct{}

// WithContextAttrs returns a context whose log records carry args as
// attributes. The auth middleware binds the acting user this way.
func WithContextAttrs(ctx context.Context, args ...any) context.Context {
	prev, _ := ctx.Value(ctxAttrsKey{}).([]slog.Attr)
	r := slog.NewRecord(time.Time{}, 0, "", 0)
	r.Add(args...)
	attrs := make([]slog.Attr, 0, len(prev)+r.NumAttrs())
	attrs = append(attrs, prev...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	return context.WithValue(ctx, ctxAttrsKey{}, attrs)
}

// contextHandler injects OTel trace_id and span_id, the chi request_id and
// attributes bound with WithContextAttrs into every record.
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		sc := span.SpanContext()
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	if requestID := middleware.GetReqID(ctx); requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}
	if attrs, ok := ctx.Value(ctxAttrsKey{}).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{h.Handler.WithGroup(name)}
}

// quietPaths are probed constantly and only logged at debug level.
var quietPaths = map[string]bool{"/health": true, "/metrics": true}

// Middleware returns a chi-compatible middleware that logs each request.
// 5xx responses log at error level and 4xx at warn.
func Middleware(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.status,
				"latency_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			}
			switch {
			case ww.status >= http.StatusInternalServerError:
				log.ErrorContext(r.Context(), "request", args...)
			case ww.status >= http.StatusBadRequest:
				log.WarnContext(r.Context(), "request", args...)
			case quietPaths[r.URL.Path]:
				log.DebugContext(r.Context(), "request", args...)
			default:
				log.InfoContext(r.Context(), "request", args...)
			}
		})
	}
}

// Recovery returns a chi-compatible middleware that recovers from panics,
// logs them with the stack and answers with a JSON 500.
func Recovery(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					log.ErrorContext(r.Context(), "panic recovered",
						"error", err,
						"stack", string(debug.Stack()),
					)
					w.Header().Set("Content-Type", "application/json; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"Internal Server Error"}` + "\n"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
