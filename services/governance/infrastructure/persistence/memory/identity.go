package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	govdomain "github.com/tocampus/governance/services/governance/domain"
	"github.com/tocampus/governance/services/governance/domain/models"
)

// Directory implements repositories.IdentityProvider over registered users
// and group memberships. Listing order follows registration order.
type Directory struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]models.Actor
	order  []uuid.UUID
	groups map[uuid.UUID][]uuid.UUID
}

// NewDirectory returns an empty Directory.
func NewDirectory() *Directory {
	return &Directory{
		users:  make(map[uuid.UUID]models.Actor),
		groups: make(map[uuid.UUID][]uuid.UUID),
	}
}

// AddUser registers a user. Re-registering an ID replaces its role and university.
func (d *Directory) AddUser(a models.Actor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[a.ID]; !ok {
		d.order = append(d.order, a.ID)
	}
	d.users[a.ID] = a
}

// AddGroupMember registers userID as a member of groupID.
func (d *Directory) AddGroupMember(groupID, userID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.groups[groupID] = append(d.groups[groupID], userID)
}

func (d *Directory) Lookup(_ context.Context, userID uuid.UUID) (*models.Actor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.users[userID]
	if !ok {
		return nil, govdomain.ErrUserNotFound
	}
	return &a, nil
}

func (d *Directory) AdminsOfUniversity(_ context.Context, universityID uuid.UUID) ([]uuid.UUID, error) {
	return d.filter(func(a models.Actor) bool {
		return a.UniversityID == universityID && a.Role == models.RoleAdmin
	}), nil
}

func (d *Directory) MembersOfUniversity(_ context.Context, universityID uuid.UUID) ([]uuid.UUID, error) {
	return d.filter(func(a models.Actor) bool {
		return a.UniversityID == universityID
	}), nil
}

func (d *Directory) MembersOfGroup(_ context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]uuid.UUID(nil), d.groups[groupID]...), nil
}

func (d *Directory) filter(keep func(models.Actor) bool) []uuid.UUID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []uuid.UUID
	for _, id := range d.order {
		if keep(d.users[id]) {
			out = append(out, id)
		}
	}
	return out
}
