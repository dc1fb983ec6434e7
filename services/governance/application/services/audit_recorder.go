package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tocampus/governance/pkg/logger"
	govdomain "github.com/tocampus/governance/services/governance/domain"
	"github.com/tocampus/governance/services/governance/domain/models"
	"github.com/tocampus/governance/services/governance/domain/repositories"
)

// AuditRecorder appends one immutable entry per governance action and serves
// the audit trail back for review.
type AuditRecorder struct {
	sink repositories.AuditSink
	log  logger.Logger
}

// NewAuditRecorder returns an AuditRecorder writing to sink.
func NewAuditRecorder(sink repositories.AuditSink, log logger.Logger) *AuditRecorder {
	return &AuditRecorder{sink: sink, log: log}
}

// Record appends an entry for a resource owned by universityID. Any sink
// failure is wrapped in ErrAuditWrite.
func (r *AuditRecorder) Record(ctx context.Context, universityID, actorID uuid.UUID, action models.AuditAction, resourceType string, resourceID uuid.UUID, details map[string]any) (*models.AuditEntry, error) {
	entry := models.NewAuditEntry(actorID, action, resourceType, resourceID, details)
	entry.UniversityID = universityID
	if err := r.sink.Append(ctx, entry); err != nil {
		r.log.ErrorContext(ctx, "audit append failed",
			"error", err,
			"action", action,
			"resource_id", resourceID,
		)
		return nil, fmt.Errorf("%w: %s %s: %w", govdomain.ErrAuditWrite, action, resourceID, err)
	}
	return entry, nil
}

// ListFor returns the trail of one resource in creation order.
func (r *AuditRecorder) ListFor(ctx context.Context, resourceID uuid.UUID) ([]*models.AuditEntry, error) {
	entries, err := r.sink.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	if entries == nil {
		entries = []*models.AuditEntry{}
	}
	return entries, nil
}

// ListAll returns one page of entries, newest first.
func (r *AuditRecorder) ListAll(ctx context.Context, f models.AuditFilter) (models.AuditPage, error) {
	page, err := r.sink.Query(ctx, f.Normalize())
	if err != nil {
		return models.AuditPage{}, fmt.Errorf("query audit entries: %w", err)
	}
	return page, nil
}
