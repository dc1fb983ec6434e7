package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	govdomain "github.com/tocampus/governance/services/governance/domain"
	"github.com/tocampus/governance/services/governance/domain/models"
)

func newItem(t *testing.T) *models.ContentItem {
	t.Helper()
	item, err := models.NewContentItem(uuid.New(), uuid.New(), nil, models.ContentFields{
		Kind:  models.KindAnnouncement,
		Title: "Library hours",
		Body:  "The library stays open late during finals week.",
	}, nil, models.NewValidationVerdict(100, nil, nil))
	if err != nil {
		t.Fatalf("NewContentItem: %v", err)
	}
	return item
}

func TestContentStore_CompareAndWrite(t *testing.T) {
	ctx := context.Background()
	s := NewContentStore()
	item := newItem(t)

	if err := s.Create(ctx, item, models.Transition{Action: models.ActionSubmit, To: models.StatePending}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Version != 1 {
		t.Fatalf("Version = %d, want 1", item.Version)
	}

	stale, _ := s.Get(ctx, item.ID)
	fresh, _ := s.Get(ctx, item.ID)

	fresh.Title = "Library hours extended"
	if err := s.Update(ctx, fresh, 1, models.Transition{}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if fresh.Version != 2 {
		t.Fatalf("Version = %d, want 2", fresh.Version)
	}

	stale.Title = "Lost update"
	if err := s.Update(ctx, stale, 1, models.Transition{}); !errors.Is(err, govdomain.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	got, _ := s.Get(ctx, item.ID)
	if got.Title != "Library hours extended" {
		t.Fatalf("stale write leaked: %q", got.Title)
	}
	if len(s.Transitions()) != 2 {
		t.Fatalf("expected 2 recorded transitions, got %d", len(s.Transitions()))
	}
}

func TestContentStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewContentStore()
	item := newItem(t)
	_ = s.Create(ctx, item, models.Transition{})

	item.Title = "changed after create"
	got, _ := s.Get(ctx, item.ID)
	if got.Title != "Library hours" {
		t.Fatal("store must not alias the caller's item")
	}
	got.Title = "changed after get"
	again, _ := s.Get(ctx, item.ID)
	if again.Title != "Library hours" {
		t.Fatal("store must not alias returned snapshots")
	}
}

func TestContentStore_NotFound(t *testing.T) {
	s := NewContentStore()
	if _, err := s.Get(context.Background(), uuid.New()); !errors.Is(err, govdomain.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
	if err := s.Update(context.Background(), newItem(t), 1, models.Transition{}); !errors.Is(err, govdomain.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestContentStore_ConcurrentWritersSingleWinner(t *testing.T) {
	ctx := context.Background()
	s := NewContentStore()
	item := newItem(t)
	_ = s.Create(ctx, item, models.Transition{})

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, _ := s.Get(ctx, item.ID)
			if err := s.Update(ctx, snap, 1, models.Transition{}); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins.Load())
	}
}

func TestDirectory(t *testing.T) {
	ctx := context.Background()
	d := NewDirectory()
	univ := uuid.New()
	other := uuid.New()
	admin := models.Actor{ID: uuid.New(), UniversityID: univ, Role: models.RoleAdmin}
	student := models.Actor{ID: uuid.New(), UniversityID: univ, Role: models.RoleStudent}
	outsider := models.Actor{ID: uuid.New(), UniversityID: other, Role: models.RoleAdmin}
	d.AddUser(admin)
	d.AddUser(student)
	d.AddUser(outsider)

	admins, _ := d.AdminsOfUniversity(ctx, univ)
	if len(admins) != 1 || admins[0] != admin.ID {
		t.Fatalf("admins = %v", admins)
	}
	members, _ := d.MembersOfUniversity(ctx, univ)
	if len(members) != 2 {
		t.Fatalf("members = %v", members)
	}

	group := uuid.New()
	d.AddGroupMember(group, student.ID)
	gm, _ := d.MembersOfGroup(ctx, group)
	if len(gm) != 1 || gm[0] != student.ID {
		t.Fatalf("group members = %v", gm)
	}

	if _, err := d.Lookup(ctx, uuid.New()); !errors.Is(err, govdomain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	got, err := d.Lookup(ctx, student.ID)
	if err != nil || got.Role != models.RoleStudent {
		t.Fatalf("Lookup = %+v, %v", got, err)
	}
}

func TestInbox_Fail(t *testing.T) {
	b := NewInbox()
	bad := uuid.New()
	good := uuid.New()
	b.Fail(bad, errors.New("mailbox full"))

	if err := b.Send(context.Background(), models.NotificationEvent{RecipientID: bad}); err == nil {
		t.Fatal("expected failure")
	}
	if err := b.Send(context.Background(), models.NotificationEvent{RecipientID: good}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Delivered()) != 1 || len(b.For(good)) != 1 || len(b.For(bad)) != 0 {
		t.Fatalf("delivered = %v", b.Delivered())
	}
}

func TestAuditLog_OrderingAndPaging(t *testing.T) {
	ctx := context.Background()
	l := NewAuditLog()
	resource := uuid.New()
	actions := []models.AuditAction{models.ActionSubmit, models.ActionReject, models.ActionResubmit, models.ActionApprove, models.ActionPublish}
	for _, a := range actions {
		if err := l.Append(ctx, models.NewAuditEntry(uuid.New(), a, "event", resource, nil)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	_ = l.Append(ctx, models.NewAuditEntry(uuid.New(), models.ActionSubmit, "announcement", uuid.New(), nil))

	t.Run("ListByResource is creation order", func(t *testing.T) {
		got, _ := l.ListByResource(ctx, resource)
		if len(got) != len(actions) {
			t.Fatalf("got %d entries", len(got))
		}
		for i, e := range got {
			if e.Action != actions[i] {
				t.Fatalf("entry %d = %s, want %s", i, e.Action, actions[i])
			}
			if i > 0 && e.Seq <= got[i-1].Seq {
				t.Fatal("Seq must increase")
			}
		}
	})

	t.Run("Query is newest first and paged", func(t *testing.T) {
		page, _ := l.Query(ctx, models.AuditFilter{Page: 1, PageSize: 4}.Normalize())
		if page.Total != 6 || len(page.Entries) != 4 {
			t.Fatalf("total=%d len=%d", page.Total, len(page.Entries))
		}
		if page.Entries[0].ResourceType != "announcement" {
			t.Fatalf("newest entry first, got %+v", page.Entries[0])
		}
		second, _ := l.Query(ctx, models.AuditFilter{Page: 2, PageSize: 4}.Normalize())
		if len(second.Entries) != 2 || second.Entries[1].Action != models.ActionSubmit {
			t.Fatalf("second page = %+v", second.Entries)
		}
		beyond, _ := l.Query(ctx, models.AuditFilter{Page: 9, PageSize: 4}.Normalize())
		if beyond.Total != 6 || len(beyond.Entries) != 0 {
			t.Fatalf("beyond last page = %+v", beyond)
		}
	})

	t.Run("Query filters", func(t *testing.T) {
		page, _ := l.Query(ctx, models.AuditFilter{Action: models.ActionSubmit, ResourceType: "event"}.Normalize())
		if page.Total != 1 || page.Entries[0].ResourceID != resource {
			t.Fatalf("filtered = %+v", page)
		}
	})

	t.Run("FailWith", func(t *testing.T) {
		l.FailWith(errors.New("disk full"))
		defer l.FailWith(nil)
		if err := l.Append(ctx, models.NewAuditEntry(uuid.New(), models.ActionSubmit, "event", resource, nil)); err == nil {
			t.Fatal("expected append failure")
		}
	})
}

func TestAuditLog_QueryByUniversity(t *testing.T) {
	ctx := context.Background()
	l := NewAuditLog()
	ours, theirs := uuid.New(), uuid.New()
	for _, univ := range []uuid.UUID{ours, ours, theirs} {
		e := models.NewAuditEntry(uuid.New(), models.ActionSubmit, "event", uuid.New(), nil)
		e.UniversityID = univ
		if err := l.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	page, _ := l.Query(ctx, models.AuditFilter{UniversityID: ours}.Normalize())
	if page.Total != 2 {
		t.Fatalf("total = %d, want 2", page.Total)
	}
	for _, e := range page.Entries {
		if e.UniversityID != ours {
			t.Errorf("entry from university %s leaked", e.UniversityID)
		}
	}
}

func TestAuditLog_StoredDetailsAreIsolated(t *testing.T) {
	ctx := context.Background()
	l := NewAuditLog()
	resource := uuid.New()
	details := map[string]any{"title": "Welcome Fair"}
	if err := l.Append(ctx, models.NewAuditEntry(uuid.New(), models.ActionSubmit, "event", resource, details)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	details["title"] = "changed after append"
	got, _ := l.ListByResource(ctx, resource)
	if got[0].Details["title"] != "Welcome Fair" {
		t.Fatalf("stored details changed through caller map: %v", got[0].Details)
	}

	got[0].Details["title"] = "changed by reader"
	again, _ := l.ListByResource(ctx, resource)
	if again[0].Details["title"] != "Welcome Fair" {
		t.Fatalf("stored details changed through returned entry: %v", again[0].Details)
	}
}
