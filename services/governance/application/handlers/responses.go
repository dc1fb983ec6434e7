package handlers

import (
	"time"

	"github.com/google/uuid"

	pkgcache "github.com/tocampus/governance/pkg/cache"
	"github.com/tocampus/governance/services/governance/domain/models"
	domainsvcs "github.com/tocampus/governance/services/governance/domain/services"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"content not found"`
} // @name ErrorResponse

// ContentResponse is the full governance view of a content item.
type ContentResponse struct {
	ID              uuid.UUID  `json:"id"                          example:"123e4567-e89b-12d3-a456-426614174000"`
	Kind            string     `json:"kind"                        example:"EVENT"`
	UniversityID    uuid.UUID  `json:"university_id"               example:"550e8400-e29b-41d4-a716-446655440000"`
	CreatorID       uuid.UUID  `json:"creator_id"                  example:"6f1c2a7e-3b4d-4e5f-8a9b-0c1d2e3f4a5b"`
	GroupID         *uuid.UUID `json:"group_id,omitempty"`
	Title           string     `json:"title"                       example:"Welcome Fair 2025"`
	Body            string     `json:"body"`
	Location        string     `json:"location,omitempty"          example:"Campus Quad"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	State           string     `json:"state"                       example:"PENDING"`
	ComplianceScore int        `json:"compliance_score"            example:"100"`
	Violations      []string   `json:"violations"`
	Warnings        []string   `json:"warnings"`
	ApprovedBy      *uuid.UUID `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ApprovalNotes   string     `json:"approval_notes,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ShareTo         []string   `json:"share_to"`
	Version         int64      `json:"version"                     example:"1"`
	CreatedAt       time.Time  `json:"created_at"                  example:"2025-09-01T10:30:00Z"`
	UpdatedAt       time.Time  `json:"updated_at"                  example:"2025-09-01T10:30:00Z"`
} // @name ContentResponse

// ContentViewResponse is the cached read model returned by GET /content/{id}.
type ContentViewResponse struct {
	ID              uuid.UUID `json:"id"`
	Kind            string    `json:"kind"             example:"ANNOUNCEMENT"`
	CreatorID       uuid.UUID `json:"creator_id"`
	Title           string    `json:"title"            example:"Library hours extended"`
	Body            string    `json:"body"`
	Location        string    `json:"location,omitempty"`
	State           string    `json:"state"            example:"PUBLISHED"`
	ComplianceScore int       `json:"compliance_score" example:"95"`
	Version         int64     `json:"version"          example:"4"`
	UpdatedAt       time.Time `json:"updated_at"`
} // @name ContentViewResponse

// ReviewResponse pairs a pending item with the validator's summary.
type ReviewResponse struct {
	Content ContentResponse            `json:"content"`
	Summary domainsvcs.ApprovalSummary `json:"summary"`
} // @name ReviewResponse

// AuditEntryResponse is one audit trail entry.
type AuditEntryResponse struct {
	ID           uuid.UUID      `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	ActorID      uuid.UUID      `json:"actor_id"`
	Action       string         `json:"action"        example:"approve"`
	ResourceType string         `json:"resource_type" example:"event"`
	ResourceID   uuid.UUID      `json:"resource_id"`
	Details      map[string]any `json:"details"`
} // @name AuditEntryResponse

// AuditPageResponse is one page of the audit log.
type AuditPageResponse struct {
	Entries  []AuditEntryResponse `json:"entries"`
	Total    int                  `json:"total"     example:"128"`
	Page     int                  `json:"page"      example:"1"`
	PageSize int                  `json:"page_size" example:"50"`
} // @name AuditPageResponse

func toContentResponse(c *models.ContentItem) ContentResponse {
	shares := make([]string, len(c.ShareTargets))
	for i, p := range c.ShareTargets {
		shares[i] = string(p)
	}
	return ContentResponse{
		ID:              c.ID,
		Kind:            string(c.Kind),
		UniversityID:    c.UniversityID,
		CreatorID:       c.CreatorID,
		GroupID:         c.GroupID,
		Title:           c.Title,
		Body:            c.Body,
		Location:        c.Location,
		StartsAt:        c.StartsAt,
		State:           string(c.State),
		ComplianceScore: c.ComplianceScore,
		Violations:      append([]string{}, c.Violations...),
		Warnings:        append([]string{}, c.Warnings...),
		ApprovedBy:      c.ApprovedBy,
		ApprovedAt:      c.ApprovedAt,
		ApprovalNotes:   c.ApprovalNotes,
		RejectionReason: c.RejectionReason,
		ShareTo:         shares,
		Version:         c.Version,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toContentView(c *pkgcache.CachedContent) ContentViewResponse {
	return ContentViewResponse{
		ID:              c.ID,
		Kind:            c.Kind,
		CreatorID:       c.CreatorID,
		Title:           c.Title,
		Body:            c.Body,
		Location:        c.Location,
		State:           c.State,
		ComplianceScore: c.ComplianceScore,
		Version:         c.Version,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toAuditEntries(entries []*models.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		details := e.Details
		if details == nil {
			details = map[string]any{}
		}
		out[i] = AuditEntryResponse{
			ID:           e.ID,
			Timestamp:    e.Timestamp,
			ActorID:      e.ActorID,
			Action:       string(e.Action),
			ResourceType: e.ResourceType,
			ResourceID:   e.ResourceID,
			Details:      details,
		}
	}
	return out
}
