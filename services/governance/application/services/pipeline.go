package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tocampus/governance/pkg/logger"
	govdomain "github.com/tocampus/governance/services/governance/domain"
	"github.com/tocampus/governance/services/governance/domain/models"
	"github.com/tocampus/governance/services/governance/domain/repositories"
	domainsvcs "github.com/tocampus/governance/services/governance/domain/services"
)

// Pipeline is the entry point the HTTP layer calls. Each operation commits
// the transition, records its audit entry, then fans out notifications and
// waits for every delivery attempt before returning.
//
// If the audit write fails after the commit, the committed item is returned
// together with an error wrapping ErrAuditWrite.
type Pipeline struct {
	workflow   *ApprovalWorkflow
	recorder   *AuditRecorder
	dispatcher *NotificationDispatcher
	shares     repositories.ShareRequester
	metrics    *Metrics
	log        logger.Logger
}

// NewPipeline composes the governance components. shares may be nil.
func NewPipeline(workflow *ApprovalWorkflow, recorder *AuditRecorder, dispatcher *NotificationDispatcher, shares repositories.ShareRequester, metrics *Metrics, log logger.Logger) *Pipeline {
	return &Pipeline{
		workflow:   workflow,
		recorder:   recorder,
		dispatcher: dispatcher,
		shares:     shares,
		metrics:    metrics,
		log:        log,
	}
}

// Submit creates content in PENDING, or APPROVED when auto-approval applies.
func (p *Pipeline) Submit(ctx context.Context, in SubmitInput, creatorID uuid.UUID) (*models.ContentItem, error) {
	out, err := p.workflow.Submit(ctx, in, creatorID)
	if err != nil {
		return nil, err
	}
	return p.finish(ctx, out)
}

// Approve signs off PENDING content after re-validating it.
func (p *Pipeline) Approve(ctx context.Context, contentID, actorID uuid.UUID, notes string) (*models.ContentItem, error) {
	out, err := p.workflow.Approve(ctx, contentID, actorID, notes)
	if err != nil {
		return nil, err
	}
	return p.finish(ctx, out)
}

// Reject turns PENDING content down with a required reason.
func (p *Pipeline) Reject(ctx context.Context, contentID, actorID uuid.UUID, reason string) (*models.ContentItem, error) {
	out, err := p.workflow.Reject(ctx, contentID, actorID, reason)
	if err != nil {
		return nil, err
	}
	return p.finish(ctx, out)
}

// Publish makes APPROVED content visible and requests social shares.
func (p *Pipeline) Publish(ctx context.Context, contentID, actorID uuid.UUID, shareTo []models.Platform) (*models.ContentItem, error) {
	out, err := p.workflow.Publish(ctx, contentID, actorID, shareTo)
	if err != nil {
		return nil, err
	}
	item, err := p.finish(ctx, out)
	if len(out.Item.ShareTargets) > 0 && p.shares != nil {
		if serr := p.shares.RequestShares(ctx, out.Item.ID, out.Item.ShareTargets); serr != nil {
			p.log.WarnContext(ctx, "share request failed",
				"error", serr,
				"content_id", out.Item.ID,
				"platforms", out.Item.ShareTargets,
			)
		}
	}
	return item, err
}

// Resubmit sends edited REJECTED content back for review.
func (p *Pipeline) Resubmit(ctx context.Context, contentID, creatorID uuid.UUID, rev models.ContentRevision) (*models.ContentItem, error) {
	out, err := p.workflow.Resubmit(ctx, contentID, creatorID, rev)
	if err != nil {
		return nil, err
	}
	return p.finish(ctx, out)
}

// Review returns the stored item and its policy summary for an admin.
func (p *Pipeline) Review(ctx context.Context, contentID, actorID uuid.UUID) (*models.ContentItem, domainsvcs.ApprovalSummary, error) {
	return p.workflow.Review(ctx, contentID, actorID)
}

// AuditTrail returns the audit entries of one item in creation order. Admin
// only. Content of another university is reported as not found.
func (p *Pipeline) AuditTrail(ctx context.Context, actorID, contentID uuid.UUID) ([]*models.AuditEntry, error) {
	actor, err := p.requireAuditor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	item, err := p.workflow.store.Get(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if item.UniversityID != actor.UniversityID {
		return nil, govdomain.ErrContentNotFound
	}
	return p.recorder.ListFor(ctx, contentID)
}

// AuditLog returns one page of the caller's university audit log, newest
// first. Admin only.
func (p *Pipeline) AuditLog(ctx context.Context, actorID uuid.UUID, f models.AuditFilter) (models.AuditPage, error) {
	actor, err := p.requireAuditor(ctx, actorID)
	if err != nil {
		return models.AuditPage{}, err
	}
	f.UniversityID = actor.UniversityID
	return p.recorder.ListAll(ctx, f)
}

func (p *Pipeline) requireAuditor(ctx context.Context, actorID uuid.UUID) (*models.Actor, error) {
	actor, err := p.workflow.Actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanReviewAudit() {
		return nil, fmt.Errorf("%w: role %s cannot read the audit log", govdomain.ErrUnauthorizedActor, actor.Role)
	}
	return actor, nil
}

// finish records one audit entry per committed transition, then fans out.
// A submission superseded by auto-approval notifies the creator only.
func (p *Pipeline) finish(ctx context.Context, out *Outcome) (*models.ContentItem, error) {
	item := out.Item
	var auditErr error
	for _, t := range out.Transitions {
		p.metrics.transition(ctx, t.Action)
		if _, err := p.recorder.Record(ctx, item.UniversityID, t.ActorID, t.Action, item.Kind.ResourceType(), item.ID, auditDetails(t, item)); err != nil {
			auditErr = errors.Join(auditErr, err)
		}
	}

	for _, t := range out.Transitions {
		if out.AutoApproved && t.Action == models.ActionSubmit {
			continue
		}
		res := p.dispatcher.FanOut(ctx, WorkflowEvent{Action: t.Action, Content: item, ActorID: t.ActorID})
		p.log.InfoContext(ctx, "content transitioned",
			"content_id", item.ID,
			"action", t.Action,
			"state", item.State,
			"notified", res.Attempted-res.Failed,
			"notify_failed", res.Failed,
		)
	}

	if auditErr != nil {
		return item, auditErr
	}
	return item, nil
}

func auditDetails(t models.Transition, item *models.ContentItem) map[string]any {
	d := map[string]any{
		"title": item.Title,
		"from":  string(t.From),
		"to":    string(t.To),
	}
	switch t.Action {
	case models.ActionSubmit, models.ActionResubmit:
		d["compliance_score"] = item.ComplianceScore
		d["violations"] = append([]string{}, item.Violations...)
		d["warnings"] = append([]string{}, item.Warnings...)
	case models.ActionApprove:
		d["compliance_score"] = item.ComplianceScore
		if item.ApprovalNotes != "" {
			d["notes"] = item.ApprovalNotes
		}
		if t.ActorID == models.SystemActorID {
			d["auto"] = true
		}
	case models.ActionReject:
		if item.RejectionReason != nil {
			d["reason"] = *item.RejectionReason
		}
	case models.ActionPublish:
		targets := make([]string, len(item.ShareTargets))
		for i, p := range item.ShareTargets {
			targets[i] = string(p)
		}
		d["share_to"] = targets
	}
	return d
}
