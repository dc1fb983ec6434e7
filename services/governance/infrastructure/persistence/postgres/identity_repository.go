package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tocampus/governance/pkg/database"
	govdomain "github.com/tocampus/governance/services/governance/domain"
	"github.com/tocampus/governance/services/governance/domain/models"
)

// IdentityRepository implements repositories.IdentityProvider over the
// governance_users and governance_group_members tables.
type IdentityRepository struct {
	db *database.Database
}

func NewIdentityRepository(db *database.Database) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func (r *IdentityRepository) Lookup(ctx context.Context, userID uuid.UUID) (*models.Actor, error) {
	var (
		a    models.Actor
		role string
	)
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT id, university_id, role FROM governance_users WHERE id = $1`, userID,
	).Scan(&a.ID, &a.UniversityID, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, govdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	if a.Role, err = models.ParseRole(role); err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}
	return &a, nil
}

func (r *IdentityRepository) AdminsOfUniversity(ctx context.Context, universityID uuid.UUID) ([]uuid.UUID, error) {
	return r.ids(ctx, `SELECT id FROM governance_users WHERE university_id = $1 AND role = $2 ORDER BY created_at, id`,
		universityID, string(models.RoleAdmin))
}

func (r *IdentityRepository) MembersOfUniversity(ctx context.Context, universityID uuid.UUID) ([]uuid.UUID, error) {
	return r.ids(ctx, `SELECT id FROM governance_users WHERE university_id = $1 ORDER BY created_at, id`, universityID)
}

func (r *IdentityRepository) MembersOfGroup(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	return r.ids(ctx, `SELECT user_id FROM governance_group_members WHERE group_id = $1 ORDER BY joined_at, user_id`, groupID)
}

func (r *IdentityRepository) ids(ctx context.Context, query string, args ...any) ([]uuid.UUID, error) {
	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}
