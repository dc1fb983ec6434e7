package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/tocampus/governance/services/governance/domain/models"
)

// IdentityProvider resolves users, roles and audiences.
type IdentityProvider interface {
	// Lookup returns the actor for userID. Returns domain.ErrUserNotFound if unknown.
	Lookup(ctx context.Context, userID uuid.UUID) (*models.Actor, error)

	// AdminsOfUniversity lists the IDs of every admin in the university.
	AdminsOfUniversity(ctx context.Context, universityID uuid.UUID) ([]uuid.UUID, error)

	// MembersOfUniversity lists the IDs of every user in the university.
	MembersOfUniversity(ctx context.Context, universityID uuid.UUID) ([]uuid.UUID, error)

	// MembersOfGroup lists the IDs of every member of the group.
	MembersOfGroup(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error)
}
