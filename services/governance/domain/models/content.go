package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes the two governed content types.
type Kind string

const (
	KindEvent        Kind = "EVENT"
	KindAnnouncement Kind = "ANNOUNCEMENT"
)

// ParseKind converts user input into a Kind. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case KindEvent, KindAnnouncement:
		return k, nil
	}
	return "", fmt.Errorf("unknown content kind %q", s)
}

// ResourceType is the audit resource type for content of this kind.
func (k Kind) ResourceType() string {
	return strings.ToLower(string(k))
}

func (k Kind) String() string {
	return string(k)
}

// ContentFields are the policy-relevant fields of a ContentItem.
// Empty strings mean "not provided".
type ContentFields struct {
	Kind     Kind
	Title    string
	Body     string
	Location string
}

// ContentRevision is a partial edit submitted on resubmission.
// Nil fields are left unchanged.
type ContentRevision struct {
	Title    *string
	Body     *string
	Location *string
}

// IsEmpty reports whether the revision changes nothing.
func (r ContentRevision) IsEmpty() bool {
	return r.Title == nil && r.Body == nil && r.Location == nil
}

// Apply returns f with the revision's non-nil fields merged in.
func (r ContentRevision) Apply(f ContentFields) ContentFields {
	if r.Title != nil {
		f.Title = *r.Title
	}
	if r.Body != nil {
		f.Body = *r.Body
	}
	if r.Location != nil {
		f.Location = *r.Location
	}
	return f
}

// ContentItem is the aggregate governed by the approval workflow.
//
// ComplianceScore, Violations and Warnings always describe the current
// Title/Body/Location: every field edit goes through Revise, which takes
// the fresh verdict for the edited fields.
type ContentItem struct {
	ID              uuid.UUID
	Kind            Kind
	UniversityID    uuid.UUID  // tenant scope
	CreatorID       uuid.UUID
	GroupID         *uuid.UUID // non-nil for group-scoped announcements
	Title           string
	Body            string
	Location        string
	StartsAt        *time.Time
	State           LifecycleState
	ComplianceScore int
	Violations      []string
	Warnings        []string
	ApprovedBy      *uuid.UUID
	ApprovedAt      *time.Time
	ApprovalNotes   string
	RejectionReason *string
	ShareTargets    []Platform
	Version         int64 // optimistic concurrency token, bumped by the store on every write
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewContentItem constructs a PENDING ContentItem from validated fields and
// the verdict computed for exactly those fields.
func NewContentItem(universityID, creatorID uuid.UUID, groupID *uuid.UUID, fields ContentFields, startsAt *time.Time, verdict ValidationVerdict) (*ContentItem, error) {
	if universityID == uuid.Nil {
		return nil, fmt.Errorf("university_id must be set")
	}
	if creatorID == uuid.Nil {
		return nil, fmt.Errorf("creator_id must be set")
	}
	if _, err := ParseKind(string(fields.Kind)); err != nil {
		return nil, err
	}
	if groupID != nil && fields.Kind != KindAnnouncement {
		return nil, fmt.Errorf("only announcements can be group-scoped")
	}

	now := time.Now().UTC()
	item := &ContentItem{
		ID:           uuid.New(),
		Kind:         fields.Kind,
		UniversityID: universityID,
		CreatorID:    creatorID,
		GroupID:      groupID,
		StartsAt:     startsAt,
		State:        StatePending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	item.setFields(fields, verdict)
	return item, nil
}

// Fields returns the policy-relevant fields of the item.
func (c *ContentItem) Fields() ContentFields {
	return ContentFields{Kind: c.Kind, Title: c.Title, Body: c.Body, Location: c.Location}
}

// Revise replaces the editable fields and the verdict describing them.
func (c *ContentItem) Revise(fields ContentFields, verdict ValidationVerdict, at time.Time) {
	c.setFields(fields, verdict)
	c.UpdatedAt = at.UTC()
}

func (c *ContentItem) setFields(fields ContentFields, verdict ValidationVerdict) {
	c.Title = fields.Title
	c.Body = fields.Body
	c.Location = fields.Location
	c.ComplianceScore = verdict.Score
	c.Violations = append([]string{}, verdict.Violations...)
	c.Warnings = append([]string{}, verdict.Warnings...)
}

// IsCreator reports whether userID created the item.
func (c *ContentItem) IsCreator(userID uuid.UUID) bool {
	return c.CreatorID == userID
}

// IsGroupScoped reports whether publication targets a group instead of the university.
func (c *ContentItem) IsGroupScoped() bool {
	return c.GroupID != nil && *c.GroupID != uuid.Nil
}

// MarkApproved moves a PENDING item to APPROVED.
func (c *ContentItem) MarkApproved(actorID uuid.UUID, notes string, at time.Time) error {
	if err := c.moveTo(StateApproved, at); err != nil {
		return err
	}
	c.ApprovedBy = &actorID
	c.ApprovedAt = &at
	c.ApprovalNotes = notes
	return nil
}

// MarkRejected moves a PENDING item to REJECTED with the given reason.
func (c *ContentItem) MarkRejected(reason string, at time.Time) error {
	if err := c.moveTo(StateRejected, at); err != nil {
		return err
	}
	c.RejectionReason = &reason
	return nil
}

// MarkResubmitted moves a REJECTED item back to PENDING and clears the rejection.
func (c *ContentItem) MarkResubmitted(at time.Time) error {
	if err := c.moveTo(StatePending, at); err != nil {
		return err
	}
	c.RejectionReason = nil
	return nil
}

// MarkPublished moves an APPROVED item to PUBLISHED.
func (c *ContentItem) MarkPublished(shareTo []Platform, at time.Time) error {
	if c.ApprovedBy == nil {
		return fmt.Errorf("cannot publish content without an approver")
	}
	if err := c.moveTo(StatePublished, at); err != nil {
		return err
	}
	c.ShareTargets = append([]Platform{}, shareTo...)
	return nil
}

func (c *ContentItem) moveTo(next LifecycleState, at time.Time) error {
	if !c.State.CanTransitionTo(next) {
		return fmt.Errorf("cannot move content from %s to %s", c.State, next)
	}
	c.State = next
	c.UpdatedAt = at.UTC()
	return nil
}

// Clone returns a deep copy so a transition can be prepared without touching
// the snapshot read from the store.
func (c *ContentItem) Clone() *ContentItem {
	out := *c
	out.Violations = append([]string{}, c.Violations...)
	out.Warnings = append([]string{}, c.Warnings...)
	out.ShareTargets = append([]Platform{}, c.ShareTargets...)
	if c.GroupID != nil {
		g := *c.GroupID
		out.GroupID = &g
	}
	if c.StartsAt != nil {
		s := *c.StartsAt
		out.StartsAt = &s
	}
	if c.ApprovedBy != nil {
		a := *c.ApprovedBy
		out.ApprovedBy = &a
	}
	if c.ApprovedAt != nil {
		a := *c.ApprovedAt
		out.ApprovedAt = &a
	}
	if c.RejectionReason != nil {
		r := *c.RejectionReason
		out.RejectionReason = &r
	}
	return &out
}
