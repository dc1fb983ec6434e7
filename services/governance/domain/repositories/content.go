package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/tocampus/governance/services/governance/domain/models"
)

// ContentStore is the persistence interface for the ContentItem aggregate.
// The domain layer owns this interface; infrastructure implements it.
type ContentStore interface {
	// Create persists a new item at Version 1. t describes the submission.
	Create(ctx context.Context, item *models.ContentItem, t models.Transition) error

	// Get returns a snapshot of the item. Returns domain.ErrContentNotFound if missing.
	Get(ctx context.Context, id uuid.UUID) (*models.ContentItem, error)

	// Update writes item only if the stored version still equals expectedVersion,
	// then sets item.Version to the new version. The check and the write are
	// atomic per id. Returns domain.ErrVersionConflict on mismatch.
	Update(ctx context.Context, item *models.ContentItem, expectedVersion int64, t models.Transition) error
}
