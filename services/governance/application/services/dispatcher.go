package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tocampus/governance/pkg/logger"
	"github.com/tocampus/governance/services/governance/domain/models"
	"github.com/tocampus/governance/services/governance/domain/repositories"
)

// DefaultFanOutConcurrency bounds in-flight deliveries per transition.
const DefaultFanOutConcurrency = 8

// WorkflowEvent is a committed transition handed to the dispatcher.
type WorkflowEvent struct {
	Action  models.AuditAction
	Content *models.ContentItem // snapshot after the transition
	ActorID uuid.UUID
}

// FanOutResult reports how many deliveries were attempted and how many failed.
type FanOutResult struct {
	Attempted int
	Failed    int
}

// NotificationDispatcher turns workflow transitions into notifications.
type NotificationDispatcher struct {
	identity repositories.IdentityProvider
	sink     repositories.NotificationSink
	log      logger.Logger
	metrics  *Metrics
	limit    int
}

// NewNotificationDispatcher returns a dispatcher running at most concurrency
// deliveries at once. Non-positive values use DefaultFanOutConcurrency.
func NewNotificationDispatcher(identity repositories.IdentityProvider, sink repositories.NotificationSink, log logger.Logger, metrics *Metrics, concurrency int) *NotificationDispatcher {
	if concurrency <= 0 {
		concurrency = DefaultFanOutConcurrency
	}
	return &NotificationDispatcher{identity: identity, sink: sink, log: log, metrics: metrics, limit: concurrency}
}

// FanOut delivers every notification evt calls for and waits for all of them.
// Per-recipient failures are logged and counted, never returned.
func (d *NotificationDispatcher) FanOut(ctx context.Context, evt WorkflowEvent) FanOutResult {
	recipients, category, err := d.recipients(ctx, evt)
	if err != nil {
		d.log.WarnContext(ctx, "resolve notification audience",
			"error", err,
			"content_id", evt.Content.ID,
			"action", evt.Action,
		)
		return FanOutResult{}
	}
	if len(recipients) == 0 {
		return FanOutResult{}
	}

	title, message := compose(evt, category)
	var failed atomic.Int64

	// Deliveries never return an error to the group, so one failure
	// cannot cancel the others.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.limit)
	for _, id := range recipients {
		g.Go(func() error {
			n := models.NotificationEvent{
				RecipientID:      id,
				Category:         category,
				Title:            title,
				Message:          message,
				RelatedContentID: evt.Content.ID,
			}
			if err := d.sink.Send(gctx, n); err != nil {
				failed.Add(1)
				d.log.WarnContext(gctx, "notification delivery failed",
					"error", err,
					"recipient_id", id,
					"content_id", evt.Content.ID,
					"category", category,
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	res := FanOutResult{Attempted: len(recipients), Failed: int(failed.Load())}
	d.metrics.notified(ctx, res.Attempted, res.Failed)
	return res
}

// recipients resolves the audience for a transition. Duplicates are removed.
func (d *NotificationDispatcher) recipients(ctx context.Context, evt WorkflowEvent) ([]uuid.UUID, models.NotificationCategory, error) {
	c := evt.Content
	switch evt.Action {
	case models.ActionSubmit, models.ActionResubmit:
		ids, err := d.identity.AdminsOfUniversity(ctx, c.UniversityID)
		return dedupe(ids, uuid.Nil), models.CategoryContentPending, err
	case models.ActionApprove:
		return []uuid.UUID{c.CreatorID}, models.CategoryContentApproved, nil
	case models.ActionReject:
		return []uuid.UUID{c.CreatorID}, models.CategoryContentRejected, nil
	case models.ActionPublish:
		var ids []uuid.UUID
		var err error
		if c.Kind == models.KindAnnouncement && c.IsGroupScoped() {
			ids, err = d.identity.MembersOfGroup(ctx, *c.GroupID)
		} else {
			ids, err = d.identity.MembersOfUniversity(ctx, c.UniversityID)
		}
		return dedupe(ids, c.CreatorID), models.CategoryNewContent, err
	}
	return nil, "", fmt.Errorf("no notification rule for action %q", evt.Action)
}

// dedupe drops duplicates and the excluded ID, keeping first-seen order.
func dedupe(ids []uuid.UUID, exclude uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == exclude || id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func compose(evt WorkflowEvent, category models.NotificationCategory) (title, message string) {
	c := evt.Content
	noun := strings.ToLower(string(c.Kind))
	label := strings.ToUpper(noun[:1]) + noun[1:]

	switch category {
	case models.CategoryContentPending:
		return label + " Pending Approval", fmt.Sprintf("New %s %q awaits your approval", noun, c.Title)
	case models.CategoryContentApproved:
		return label + " Approved", fmt.Sprintf("Your %s %q has been approved and is ready to publish", noun, c.Title)
	case models.CategoryContentRejected:
		reason := ""
		if c.RejectionReason != nil {
			reason = *c.RejectionReason
		}
		return label + " Rejected", fmt.Sprintf("Your %s %q was rejected. Reason: %s", noun, c.Title, reason)
	default:
		msg := fmt.Sprintf("New %s: %q", noun, c.Title)
		if c.StartsAt != nil {
			msg += " on " + c.StartsAt.Format("Jan 2, 2006")
		}
		return "New " + label, msg
	}
}
