package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

// Defaults applied by NewRouter when the matching ServerConfig field is zero.
const (
	DefaultRateLimit      = 300
	DefaultMaxBodyBytes   = 1 << 20
	DefaultRequestTimeout = 15 * time.Second
)

// ServerConfig holds the options for NewRouter.
type ServerConfig struct {
	ServiceName   string
	IsDevelopment bool
	// CORSAllowedOrigins is a comma-separated list of allowed origins.
	// Pass "*" (dev only) to allow all origins.
	CORSAllowedOrigins string
	// RateLimit is the number of requests per minute allowed per client IP.
	RateLimit      int
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

func (c ServerConfig) withDefaults() ServerConfig {
	if c.RateLimit <= 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	return c
}

// NewRouter returns a chi.Mux carrying the standard middleware stack.
//
// Order, outermost first:
//  1. recovery: last resort for panics re-raised by sentry
//  2. sentry: reports panics and re-panics
//  3. RequestID
//  4. otel: one span per request
//  5. logger: one line per request with trace and request IDs
//  6. RealIP
//  7. rate limit per client IP
//  8. CORS
//  9. body size cap
//  10. handler deadline
//  11. security headers
func NewRouter(
	cfg ServerConfig,
	loggerMiddleware func(http.Handler) http.Handler,
	recoveryMiddleware func(http.Handler) http.Handler,
	sentryMiddleware func(http.Handler) http.Handler,
	otelMiddleware func(http.Handler) http.Handler,
) *chi.Mux {
	cfg = cfg.withDefaults()

	r := chi.NewRouter()
	r.Use(
		recoveryMiddleware,
		sentryMiddleware,
		middleware.RequestID,
		otelMiddleware,
		loggerMiddleware,
		middleware.RealIP,
		httprate.LimitByIP(cfg.RateLimit, time.Minute),
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(cfg.MaxBodyBytes),
		middleware.Timeout(cfg.RequestTimeout),
		SecurityHeaders(cfg.IsDevelopment),
	)
	return r
}

// SecurityHeaders sets HSTS, CSP, frame and referrer headers. The API only
// serves JSON and the swagger UI, so the CSP allows same-origin only.
func SecurityHeaders(isDevelopment bool) func(http.Handler) http.Handler {
	return secure.New(secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'self'; frame-ancestors 'none'",
		PermissionsPolicy:     "geolocation=(), camera=(), microphone=()",
		IsDevelopment:         isDevelopment,
	}).Handler
}

// CORSMiddleware restricts cross-origin calls to allowedOrigins, a
// comma-separated list. "*" allows every origin.
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   parseOrigins(allowedOrigins),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

func parseOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p := strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit caps the request body at maxBytes. Reads past the cap
// fail with *http.MaxBytesError, which errhttp maps to 413.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer returns an *http.Server for handler. The write timeout leaves
// room past requestTimeout for the timeout response itself.
func NewServer(addr string, handler http.Handler, requestTimeout time.Duration) *http.Server {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
