package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func compliantVerdict() ValidationVerdict {
	return NewValidationVerdict(100, nil, nil)
}

func newEvent(t *testing.T) *ContentItem {
	t.Helper()
	item, err := NewContentItem(uuid.New(), uuid.New(), nil, ContentFields{
		Kind:     KindEvent,
		Title:    "Welcome Fair",
		Body:     "Meet the student clubs on the quad.",
		Location: "Campus Quad",
	}, nil, compliantVerdict())
	if err != nil {
		t.Fatalf("NewContentItem: %v", err)
	}
	return item
}

func TestNewContentItem(t *testing.T) {
	univ := uuid.New()
	creator := uuid.New()

	t.Run("starts pending with verdict applied", func(t *testing.T) {
		verdict := NewValidationVerdict(80, []string{"Title is too short (minimum 5 characters)"}, []string{"w"})
		item, err := NewContentItem(univ, creator, nil, ContentFields{Kind: KindAnnouncement, Title: "Hi"}, nil, verdict)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.State != StatePending {
			t.Fatalf("expected PENDING, got %s", item.State)
		}
		if item.ComplianceScore != 80 || len(item.Violations) != 1 || len(item.Warnings) != 1 {
			t.Fatalf("verdict not applied: %+v", item)
		}
		if item.ID == uuid.Nil {
			t.Fatal("expected generated ID")
		}
		if item.CreatedAt.IsZero() || !item.CreatedAt.Equal(item.UpdatedAt) {
			t.Fatal("expected CreatedAt == UpdatedAt on creation")
		}
	})

	t.Run("zero university rejected", func(t *testing.T) {
		if _, err := NewContentItem(uuid.Nil, creator, nil, ContentFields{Kind: KindEvent}, nil, compliantVerdict()); err == nil {
			t.Fatal("expected error for zero university")
		}
	})

	t.Run("zero creator rejected", func(t *testing.T) {
		if _, err := NewContentItem(univ, uuid.Nil, nil, ContentFields{Kind: KindEvent}, nil, compliantVerdict()); err == nil {
			t.Fatal("expected error for zero creator")
		}
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		if _, err := NewContentItem(univ, creator, nil, ContentFields{Kind: "POLL"}, nil, compliantVerdict()); err == nil {
			t.Fatal("expected error for unknown kind")
		}
	})

	t.Run("group scope only for announcements", func(t *testing.T) {
		g := uuid.New()
		if _, err := NewContentItem(univ, creator, &g, ContentFields{Kind: KindEvent}, nil, compliantVerdict()); err == nil {
			t.Fatal("expected error for group-scoped event")
		}
		item, err := NewContentItem(univ, creator, &g, ContentFields{Kind: KindAnnouncement}, nil, compliantVerdict())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !item.IsGroupScoped() {
			t.Fatal("expected group-scoped announcement")
		}
	})

	t.Run("verdict slices are copied", func(t *testing.T) {
		violations := []string{"a"}
		verdict := ValidationVerdict{Violations: violations}
		item, _ := NewContentItem(univ, creator, nil, ContentFields{Kind: KindEvent}, nil, verdict)
		violations[0] = "mutated"
		if item.Violations[0] != "a" {
			t.Fatal("item must not alias the verdict's slice")
		}
	})
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"EVENT", KindEvent, false},
		{"event", KindEvent, false},
		{" Announcement ", KindAnnouncement, false},
		{"poll", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr = %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKind_ResourceType(t *testing.T) {
	if KindEvent.ResourceType() != "event" {
		t.Errorf("got %q", KindEvent.ResourceType())
	}
	if KindAnnouncement.ResourceType() != "announcement" {
		t.Errorf("got %q", KindAnnouncement.ResourceType())
	}
}

func TestContentRevision_Apply(t *testing.T) {
	base := ContentFields{Kind: KindEvent, Title: "Old title", Body: "Old body", Location: "Old place"}
	title := "New title"
	body := ""

	got := ContentRevision{Title: &title, Body: &body}.Apply(base)

	if got.Title != "New title" {
		t.Errorf("Title: got %q", got.Title)
	}
	if got.Body != "" {
		t.Errorf("Body should be cleared, got %q", got.Body)
	}
	if got.Location != "Old place" {
		t.Errorf("Location should be unchanged, got %q", got.Location)
	}
	if got.Kind != KindEvent {
		t.Errorf("Kind must never change, got %q", got.Kind)
	}
	if !(ContentRevision{}).IsEmpty() {
		t.Error("zero revision should be empty")
	}
}

func TestContentItem_Revise(t *testing.T) {
	item := newEvent(t)
	at := time.Date(2031, 3, 4, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	item.Revise(ContentFields{Kind: KindEvent, Title: "Hi"}, NewValidationVerdict(55, []string{"too short"}, nil), at)

	if item.Title != "Hi" || item.Body != "" || item.Location != "" {
		t.Fatalf("fields not replaced: %+v", item.Fields())
	}
	if item.ComplianceScore != 55 || len(item.Violations) != 1 {
		t.Fatalf("verdict not replaced: score=%d violations=%v", item.ComplianceScore, item.Violations)
	}
	if !item.UpdatedAt.Equal(at) || item.UpdatedAt.Location() != time.UTC {
		t.Fatalf("UpdatedAt = %v, want %v in UTC", item.UpdatedAt, at)
	}
}

func TestContentItem_Transitions(t *testing.T) {
	admin := uuid.New()
	now := time.Now().UTC()

	t.Run("approve then publish", func(t *testing.T) {
		item := newEvent(t)
		if err := item.MarkApproved(admin, "looks good", now); err != nil {
			t.Fatalf("MarkApproved: %v", err)
		}
		if item.ApprovedBy == nil || *item.ApprovedBy != admin || item.ApprovedAt == nil {
			t.Fatal("approval fields not set")
		}
		if err := item.MarkPublished([]Platform{PlatformTwitter}, now); err != nil {
			t.Fatalf("MarkPublished: %v", err)
		}
		if item.State != StatePublished || len(item.ShareTargets) != 1 {
			t.Fatalf("unexpected state %s targets %v", item.State, item.ShareTargets)
		}
	})

	t.Run("publish requires approval", func(t *testing.T) {
		item := newEvent(t)
		if err := item.MarkPublished(nil, now); err == nil {
			t.Fatal("expected error publishing pending content")
		}
		if item.State != StatePending {
			t.Fatalf("state must be unchanged, got %s", item.State)
		}
	})

	t.Run("reject then resubmit clears reason", func(t *testing.T) {
		item := newEvent(t)
		if err := item.MarkRejected("off topic", now); err != nil {
			t.Fatalf("MarkRejected: %v", err)
		}
		if item.RejectionReason == nil || *item.RejectionReason != "off topic" {
			t.Fatal("reason not stored")
		}
		if err := item.MarkResubmitted(now); err != nil {
			t.Fatalf("MarkResubmitted: %v", err)
		}
		if item.State != StatePending || item.RejectionReason != nil {
			t.Fatalf("expected PENDING with cleared reason, got %s %v", item.State, item.RejectionReason)
		}
	})

	t.Run("approved cannot be rejected", func(t *testing.T) {
		item := newEvent(t)
		_ = item.MarkApproved(admin, "", now)
		if err := item.MarkRejected("late", now); err == nil {
			t.Fatal("expected error rejecting approved content")
		}
	})
}

func TestContentItem_Clone(t *testing.T) {
	item := newEvent(t)
	reason := "r"
	item.RejectionReason = &reason
	admin := uuid.New()
	item.ApprovedBy = &admin

	clone := item.Clone()
	clone.Violations = append(clone.Violations, "extra")
	*clone.RejectionReason = "changed"
	*clone.ApprovedBy = uuid.New()

	if len(item.Violations) != 0 {
		t.Fatal("clone shares Violations with original")
	}
	if *item.RejectionReason != "r" {
		t.Fatal("clone shares RejectionReason with original")
	}
	if *item.ApprovedBy != admin {
		t.Fatal("clone shares ApprovedBy with original")
	}
}
