package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the closed set of university roles known to the identity provider.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
	RoleFaculty Role = "FACULTY"
	RoleAdmin   Role = "ADMIN"
)

// SystemActorID attributes automated actions (auto-approval) in the audit trail.
var SystemActorID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// ParseRole converts a stored string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleStudent, RoleStaff, RoleFaculty, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// CanSubmit reports whether the role may create content. Every registered role can.
func (r Role) CanSubmit() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

// CanApprove reports whether the role may approve or reject pending content.
func (r Role) CanApprove() bool {
	return r == RoleAdmin
}

// CanPublish reports whether the role may publish approved content.
// Creators may publish their own content; admins may publish anything.
func (r Role) CanPublish(isCreator bool) bool {
	return isCreator || r.CanApprove()
}

// CanReviewAudit reports whether the role may read the audit trail.
func (r Role) CanReviewAudit() bool {
	return r == RoleAdmin
}

// Actor is a user as seen by the governance pipeline.
type Actor struct {
	ID           uuid.UUID
	UniversityID uuid.UUID
	Role         Role
}

// SystemActor returns the actor used for automated transitions in the given university.
func SystemActor(universityID uuid.UUID) *Actor {
	return &Actor{ID: SystemActorID, UniversityID: universityID, Role: RoleAdmin}
}

// IsSystem reports whether the actor is the automated system actor.
func (a *Actor) IsSystem() bool {
	return a.ID == SystemActorID
}
