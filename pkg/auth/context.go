package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const userIDKey contextKey = "user_id"

// ErrUserIDNotFound is returned when no user ID exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrUserIDNotFound = errors.New("user_id not found in context")

// UserIDFromCtx extracts the authenticated user ID from the request context.
// Returns uuid.Nil and ErrUserIDNotFound if none is set (unauthenticated request).
func UserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrUserIDNotFound
	}
	return id, nil
}

// WithUserID returns a new context with the given user ID attached.
// Used by authentication middleware after validating the session.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
