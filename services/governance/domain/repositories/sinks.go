package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/tocampus/governance/services/governance/domain/models"
)

// NotificationSink delivers one notification to one user.
type NotificationSink interface {
	Send(ctx context.Context, n models.NotificationEvent) error
}

// AuditSink is an append-only store of audit entries. Implementations never
// update or delete an entry once appended.
type AuditSink interface {
	// Append stores e and assigns e.Seq, which increases with every append.
	Append(ctx context.Context, e *models.AuditEntry) error

	// ListByResource returns the entries for resourceID in Seq order.
	ListByResource(ctx context.Context, resourceID uuid.UUID) ([]*models.AuditEntry, error)

	// Query returns one page of matching entries, newest first.
	// The filter must already be normalized.
	Query(ctx context.Context, f models.AuditFilter) (models.AuditPage, error)
}

// ShareRequester hands published content to the external social posting service.
type ShareRequester interface {
	RequestShares(ctx context.Context, contentID uuid.UUID, platforms []models.Platform) error
}
