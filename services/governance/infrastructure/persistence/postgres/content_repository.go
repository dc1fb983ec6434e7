// Package postgres implements the governance repositories against PostgreSQL
// through pkg/database. Content writes publish their domain event through the
// Watermill SQL outbox inside the same transaction.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tocampus/governance/pkg/database"
	govdomain "github.com/tocampus/governance/services/governance/domain"
	domainevents "github.com/tocampus/governance/services/governance/domain/events"
	"github.com/tocampus/governance/services/governance/domain/models"
)

// OutboxPublisher writes an event inside an open transaction.
// *events.EventBus satisfies it.
type OutboxPublisher interface {
	PublishTx(ctx context.Context, tx *sql.Tx, topic, eventID string, version int, payload any) error
}

// ContentRepository implements repositories.ContentStore.
type ContentRepository struct {
	db  *database.Database
	bus OutboxPublisher
}

// NewContentRepository returns a ContentRepository. bus may be nil, in which
// case no domain events are written.
func NewContentRepository(db *database.Database, bus OutboxPublisher) *ContentRepository {
	return &ContentRepository{db: db, bus: bus}
}

const contentColumns = `id, kind, university_id, creator_id, group_id, title, body, location,
	starts_at, state, compliance_score, violations, warnings, approved_by, approved_at,
	approval_notes, rejection_reason, share_targets, version, created_at, updated_at`

// Create inserts item at version 1 and publishes content.submitted.
func (r *ContentRepository) Create(ctx context.Context, item *models.ContentItem, t models.Transition) error {
	row, err := toRow(item)
	if err != nil {
		return err
	}
	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO content_items (`+contentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, 1, $19, $20)`,
			item.ID, string(item.Kind), item.UniversityID, item.CreatorID, item.GroupID,
			item.Title, item.Body, item.Location, item.StartsAt, string(item.State),
			item.ComplianceScore, row.violations, row.warnings, item.ApprovedBy, item.ApprovedAt,
			item.ApprovalNotes, item.RejectionReason, row.shareTargets, item.CreatedAt, item.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return govdomain.ErrVersionConflict
			}
			return fmt.Errorf("insert content: %w", err)
		}
		item.Version = 1
		return r.publish(ctx, tx, item, t)
	})
	if err != nil {
		item.Version = 0
	}
	return err
}

// Get loads one item. Returns ErrContentNotFound when the id is unknown.
func (r *ContentRepository) Get(ctx context.Context, id uuid.UUID) (*models.ContentItem, error) {
	row := r.db.DB().QueryRowContext(ctx, `SELECT `+contentColumns+` FROM content_items WHERE id = $1`, id)
	item, err := scanContent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, govdomain.ErrContentNotFound
		}
		return nil, fmt.Errorf("query content: %w", err)
	}
	return item, nil
}

// Update writes item when the stored version equals expectedVersion and
// publishes the transition's event in the same transaction.
func (r *ContentRepository) Update(ctx context.Context, item *models.ContentItem, expectedVersion int64, t models.Transition) error {
	row, err := toRow(item)
	if err != nil {
		return err
	}
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE content_items SET
				title = $3, body = $4, location = $5, state = $6, compliance_score = $7,
				violations = $8, warnings = $9, approved_by = $10, approved_at = $11,
				approval_notes = $12, rejection_reason = $13, share_targets = $14,
				updated_at = $15, version = version + 1
			WHERE id = $1 AND version = $2`,
			item.ID, expectedVersion,
			item.Title, item.Body, item.Location, string(item.State), item.ComplianceScore,
			row.violations, row.warnings, item.ApprovedBy, item.ApprovedAt,
			item.ApprovalNotes, item.RejectionReason, row.shareTargets,
			item.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update content: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update content: %w", err)
		}
		if n == 0 {
			return r.missOrConflict(ctx, tx, item.ID)
		}
		item.Version = expectedVersion + 1
		return r.publish(ctx, tx, item, t)
	})
}

func (r *ContentRepository) missOrConflict(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM content_items WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check content: %w", err)
	}
	if !exists {
		return govdomain.ErrContentNotFound
	}
	return govdomain.ErrVersionConflict
}

func (r *ContentRepository) publish(ctx context.Context, tx *sql.Tx, item *models.ContentItem, t models.Transition) error {
	if r.bus == nil {
		return nil
	}
	topic, ok := domainevents.TopicForTransition(t)
	if !ok {
		return nil
	}
	evt := domainevents.NewContentTransitionedEvent(item, t)
	if err := r.bus.PublishTx(ctx, tx, topic, evt.EventID.String(), evt.Version, evt); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

type jsonColumns struct {
	violations   string
	warnings     string
	shareTargets string
}

func toRow(item *models.ContentItem) (jsonColumns, error) {
	var cols jsonColumns
	for _, c := range []struct {
		dst *string
		src any
	}{
		{&cols.violations, nonNil(item.Violations)},
		{&cols.warnings, nonNil(item.Warnings)},
		{&cols.shareTargets, nonNil(item.ShareTargets)},
	} {
		b, err := json.Marshal(c.src)
		if err != nil {
			return cols, fmt.Errorf("marshal content column: %w", err)
		}
		*c.dst = string(b)
	}
	return cols, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(s rowScanner) (*models.ContentItem, error) {
	var (
		item                              models.ContentItem
		kind, state                       string
		groupID, approvedBy               uuid.NullUUID
		startsAt, approvedAt              sql.NullTime
		rejection                         sql.NullString
		violations, warnings, shareTarget []byte
	)
	err := s.Scan(
		&item.ID, &kind, &item.UniversityID, &item.CreatorID, &groupID,
		&item.Title, &item.Body, &item.Location, &startsAt, &state,
		&item.ComplianceScore, &violations, &warnings, &approvedBy, &approvedAt,
		&item.ApprovalNotes, &rejection, &shareTarget, &item.Version, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Kind = models.Kind(kind)
	if item.State, err = models.ParseLifecycleState(state); err != nil {
		return nil, fmt.Errorf("content %s: %w", item.ID, err)
	}
	if groupID.Valid {
		item.GroupID = &groupID.UUID
	}
	if approvedBy.Valid {
		item.ApprovedBy = &approvedBy.UUID
	}
	item.StartsAt = timePtr(startsAt)
	item.ApprovedAt = timePtr(approvedAt)
	if rejection.Valid {
		item.RejectionReason = &rejection.String
	}
	if err := json.Unmarshal(violations, &item.Violations); err != nil {
		return nil, fmt.Errorf("content %s violations: %w", item.ID, err)
	}
	if err := json.Unmarshal(warnings, &item.Warnings); err != nil {
		return nil, fmt.Errorf("content %s warnings: %w", item.ID, err)
	}
	if err := json.Unmarshal(shareTarget, &item.ShareTargets); err != nil {
		return nil, fmt.Errorf("content %s share targets: %w", item.ID, err)
	}
	return &item, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
