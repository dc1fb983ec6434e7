package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction names a governance action recorded in the audit trail.
type AuditAction string

const (
	ActionSubmit   AuditAction = "submit"
	ActionApprove  AuditAction = "approve"
	ActionReject   AuditAction = "reject"
	ActionResubmit AuditAction = "resubmit"
	ActionPublish  AuditAction = "publish"
)

// AuditEntry is an immutable record of one governance action.
// Seq is assigned by the sink and defines creation order. UniversityID is the
// tenant owning the resource and scopes every read.
type AuditEntry struct {
	ID           uuid.UUID      `json:"id"`
	Seq          int64          `json:"seq"`
	Timestamp    time.Time      `json:"timestamp"`
	UniversityID uuid.UUID      `json:"university_id"`
	ActorID      uuid.UUID      `json:"actor_id"`
	Action       AuditAction    `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   uuid.UUID      `json:"resource_id"`
	Details      map[string]any `json:"details,omitempty"`
}

// NewAuditEntry builds an entry with a fresh ID and the current time.
func NewAuditEntry(actorID uuid.UUID, action AuditAction, resourceType string, resourceID uuid.UUID, details map[string]any) *AuditEntry {
	return &AuditEntry{
		ID:           uuid.New(),
		Timestamp:    time.Now().UTC(),
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
	}
}

const (
	DefaultAuditPageSize = 50
	MaxAuditPageSize     = 200
)

// AuditFilter selects entries for administrative review. Page is 1-based.
// A zero UniversityID matches every tenant; the pipeline always sets it.
type AuditFilter struct {
	UniversityID uuid.UUID
	Action       AuditAction
	ResourceType string
	Page         int
	PageSize     int
}

// Normalize fills defaults and clamps the page size.
func (f AuditFilter) Normalize() AuditFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultAuditPageSize
	}
	if f.PageSize > MaxAuditPageSize {
		f.PageSize = MaxAuditPageSize
	}
	return f
}

// Offset is the number of matching entries skipped before this page.
func (f AuditFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Matches reports whether e passes the university, action and resource type
// filters.
func (f AuditFilter) Matches(e *AuditEntry) bool {
	if f.UniversityID != uuid.Nil && e.UniversityID != f.UniversityID {
		return false
	}
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if f.ResourceType != "" && e.ResourceType != f.ResourceType {
		return false
	}
	return true
}

// AuditPage is one page of ListAll results plus the total match count.
type AuditPage struct {
	Entries  []*AuditEntry `json:"entries"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}
