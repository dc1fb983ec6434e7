package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tocampus/governance/pkg/config"
	"github.com/tocampus/governance/pkg/logger"
	"github.com/tocampus/governance/services/governance/domain/models"
	domainsvcs "github.com/tocampus/governance/services/governance/domain/services"
	"github.com/tocampus/governance/services/governance/infrastructure/persistence/memory"
)

const benignBody = "Join us on the main campus quad for the annual welcome fair. " +
	"Meet student clubs, grab free snacks, and discover volunteer programs across the country."

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// fixture is one university with two admins, a creating student, two other
// members and a group, plus an admin from another university.
type fixture struct {
	store *memory.ContentStore
	dir   *memory.Directory
	inbox *memory.Inbox
	audit *memory.AuditLog
	svcs  *Services

	univ     uuid.UUID
	admins   []uuid.UUID
	creator  uuid.UUID
	staff    uuid.UUID
	faculty  uuid.UUID
	group    uuid.UUID
	outsider uuid.UUID
}

func newFixture(t *testing.T, configure ...func(*Deps)) *fixture {
	t.Helper()
	f := &fixture{
		store:    memory.NewContentStore(),
		dir:      memory.NewDirectory(),
		inbox:    memory.NewInbox(),
		audit:    memory.NewAuditLog(),
		univ:     uuid.New(),
		admins:   []uuid.UUID{uuid.New(), uuid.New()},
		creator:  uuid.New(),
		staff:    uuid.New(),
		faculty:  uuid.New(),
		group:    uuid.New(),
		outsider: uuid.New(),
	}
	for _, id := range f.admins {
		f.dir.AddUser(models.Actor{ID: id, UniversityID: f.univ, Role: models.RoleAdmin})
	}
	f.dir.AddUser(models.Actor{ID: f.creator, UniversityID: f.univ, Role: models.RoleStudent})
	f.dir.AddUser(models.Actor{ID: f.staff, UniversityID: f.univ, Role: models.RoleStaff})
	f.dir.AddUser(models.Actor{ID: f.faculty, UniversityID: f.univ, Role: models.RoleFaculty})
	f.dir.AddUser(models.Actor{ID: f.outsider, UniversityID: uuid.New(), Role: models.RoleAdmin})
	f.dir.AddGroupMember(f.group, f.creator)
	f.dir.AddGroupMember(f.group, f.staff)

	deps := Deps{
		Store:         f.store,
		Identity:      f.dir,
		Notifications: f.inbox,
		Audit:         f.audit,
		Rules:         domainsvcs.DefaultPolicyRules(),
		Log:           nopLogger(),
	}
	for _, c := range configure {
		c(&deps)
	}
	f.svcs = Compose(deps)
	return f
}

func (f *fixture) admin() uuid.UUID { return f.admins[0] }

func benignEvent() SubmitInput {
	return SubmitInput{Kind: models.KindEvent, Title: "Welcome Fair 2025", Body: benignBody, Location: "Campus Quad"}
}

func (f *fixture) submit(t *testing.T, in SubmitInput) *models.ContentItem {
	t.Helper()
	item, err := f.svcs.Pipeline.Submit(context.Background(), in, f.creator)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	return item
}

func (f *fixture) stored(t *testing.T, id uuid.UUID) *models.ContentItem {
	t.Helper()
	item, err := f.store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("store.Get: %v", err)
	}
	return item
}

func (f *fixture) categoriesFor(id uuid.UUID) []models.NotificationCategory {
	var out []models.NotificationCategory
	for _, n := range f.inbox.For(id) {
		out = append(out, n.Category)
	}
	return out
}

func strptr(s string) *string { return &s }

type recordedShare struct {
	contentID uuid.UUID
	platforms []models.Platform
}

// fakeShares records share requests and optionally fails them.
type fakeShares struct {
	mu       sync.Mutex
	requests []recordedShare
	err      error
}

func (s *fakeShares) RequestShares(_ context.Context, contentID uuid.UUID, platforms []models.Platform) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, recordedShare{contentID: contentID, platforms: platforms})
	return s.err
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
