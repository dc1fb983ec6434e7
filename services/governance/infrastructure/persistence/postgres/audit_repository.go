package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tocampus/governance/pkg/database"
	"github.com/tocampus/governance/services/governance/domain/models"
)

// AuditRepository implements repositories.AuditSink. Rows are only ever
// inserted; seq comes from a BIGSERIAL so it follows commit order per writer.
type AuditRepository struct {
	db *database.Database
}

func NewAuditRepository(db *database.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, e *models.AuditEntry) error {
	details := e.Details
	if details == nil {
		details = map[string]any{}
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}
	err = r.db.DB().QueryRowContext(ctx, `
		INSERT INTO audit_entries (id, occurred_at, university_id, actor_id, action, resource_type, resource_id, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`,
		e.ID, e.Timestamp, e.UniversityID, e.ActorID, string(e.Action), e.ResourceType, e.ResourceID, string(payload),
	).Scan(&e.Seq)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListByResource(ctx context.Context, resourceID uuid.UUID) ([]*models.AuditEntry, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT seq, id, occurred_at, university_id, actor_id, action, resource_type, resource_id, details
		FROM audit_entries WHERE resource_id = $1 ORDER BY seq`, resourceID)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	return collectAudit(rows)
}

func (r *AuditRepository) Query(ctx context.Context, f models.AuditFilter) (models.AuditPage, error) {
	where, args := auditWhere(f)

	var total int
	if err := r.db.DB().QueryRowContext(ctx, `SELECT count(*) FROM audit_entries`+where, args...).Scan(&total); err != nil {
		return models.AuditPage{}, fmt.Errorf("count audit entries: %w", err)
	}

	n := len(args)
	args = append(args, f.PageSize, f.Offset())
	rows, err := r.db.DB().QueryContext(ctx, fmt.Sprintf(`
		SELECT seq, id, occurred_at, university_id, actor_id, action, resource_type, resource_id, details
		FROM audit_entries%s ORDER BY seq DESC LIMIT $%d OFFSET $%d`, where, n+1, n+2), args...)
	if err != nil {
		return models.AuditPage{}, fmt.Errorf("query audit entries: %w", err)
	}
	entries, err := collectAudit(rows)
	if err != nil {
		return models.AuditPage{}, err
	}
	return models.AuditPage{Entries: entries, Total: total, Page: f.Page, PageSize: f.PageSize}, nil
}

// auditWhere builds the WHERE clause for the optional filters.
func auditWhere(f models.AuditFilter) (string, []any) {
	var conds []string
	var args []any
	if f.UniversityID != uuid.Nil {
		args = append(args, f.UniversityID)
		conds = append(conds, fmt.Sprintf("university_id = $%d", len(args)))
	}
	if f.Action != "" {
		args = append(args, string(f.Action))
		conds = append(conds, fmt.Sprintf("action = $%d", len(args)))
	}
	if f.ResourceType != "" {
		args = append(args, f.ResourceType)
		conds = append(conds, fmt.Sprintf("resource_type = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func collectAudit(rows *sql.Rows) ([]*models.AuditEntry, error) {
	defer rows.Close() //nolint:errcheck

	entries := make([]*models.AuditEntry, 0)
	for rows.Next() {
		var (
			e       models.AuditEntry
			action  string
			details []byte
		)
		if err := rows.Scan(&e.Seq, &e.ID, &e.Timestamp, &e.UniversityID, &e.ActorID, &action, &e.ResourceType, &e.ResourceID, &details); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Action = models.AuditAction(action)
		e.Timestamp = e.Timestamp.UTC()
		if err := json.Unmarshal(details, &e.Details); err != nil {
			return nil, fmt.Errorf("audit entry %d details: %w", e.Seq, err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
