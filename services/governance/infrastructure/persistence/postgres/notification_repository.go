package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tocampus/governance/pkg/database"
	"github.com/tocampus/governance/services/governance/domain/models"
)

// NotificationRepository implements repositories.NotificationSink by writing
// each notification to the recipient's inbox table.
type NotificationRepository struct {
	db *database.Database
}

func NewNotificationRepository(db *database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Send(ctx context.Context, n models.NotificationEvent) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO notifications (id, recipient_id, category, title, message, related_content_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), n.RecipientID, string(n.Category), n.Title, n.Message, n.RelatedContentID,
	)
	if err != nil {
		return fmt.Errorf("insert notification for %s: %w", n.RecipientID, err)
	}
	return nil
}
