package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/tocampus/governance/pkg/httpx"
	"github.com/tocampus/governance/pkg/logger"
)

const (
	sessionName      = "governance_session"
	sessionUserIDKey = "user_id"

	// DevUserHeader carries the acting user in development when no session
	// exists. Ignored unless RequireAuth is built with allowDevHeader.
	DevUserHeader = "X-User-ID"
)

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It reads the session cookie, extracts the user ID, and injects it into the request context.
// Returns 401 Unauthorized if the session is missing, invalid, or lacks a valid user_id.
//
// With allowDevHeader set, a request without a session may name its user in
// the X-User-ID header instead. Never enable it in production.
//
// After this middleware, handlers can safely call auth.UserIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger, allowDevHeader bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, source := "", "session"
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
			} else if v, ok := session.Values[sessionUserIDKey].(string); ok {
				raw = v
			}
			if raw == "" && allowDevHeader {
				raw, source = r.Header.Get(DevUserHeader), "header"
			}

			if raw == "" {
				log.WarnContext(r.Context(), "request missing user_id")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				log.WarnContext(r.Context(), "invalid user_id", "source", source, "user_id", raw, "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid session data"})
				return
			}

			ctx := WithUserID(r.Context(), userID)
			ctx = logger.WithContextAttrs(ctx, "user_id", userID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
