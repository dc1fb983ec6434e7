package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/tocampus/governance/services/governance/domain/models"
)

// Watermill topics published when a ContentItem changes lifecycle state.
// content.revised carries in-place edits that leave the state unchanged.
const (
	TopicContentSubmitted   = "content.submitted"
	TopicContentApproved    = "content.approved"
	TopicContentRejected    = "content.rejected"
	TopicContentResubmitted = "content.resubmitted"
	TopicContentPublished   = "content.published"
	TopicContentRevised     = "content.revised"
)

// ActionRevised is the event action of a revision.
const ActionRevised = "revise"

// EventVersion is the schema version of ContentTransitionedEvent.
const EventVersion = 1

// Topics lists every content topic, in lifecycle order.
var Topics = []string{
	TopicContentSubmitted,
	TopicContentApproved,
	TopicContentRejected,
	TopicContentResubmitted,
	TopicContentPublished,
	TopicContentRevised,
}

// TopicFor maps an audit action to its topic. ok is false for unknown actions.
func TopicFor(action models.AuditAction) (topic string, ok bool) {
	switch action {
	case models.ActionSubmit:
		return TopicContentSubmitted, true
	case models.ActionApprove:
		return TopicContentApproved, true
	case models.ActionReject:
		return TopicContentRejected, true
	case models.ActionResubmit:
		return TopicContentResubmitted, true
	case models.ActionPublish:
		return TopicContentPublished, true
	}
	return "", false
}

// TopicForTransition returns the topic a committed write publishes on. Every
// version bump maps to a topic so read models never miss a change.
func TopicForTransition(t models.Transition) (topic string, ok bool) {
	switch {
	case t.IsRevision():
		return TopicContentRevised, true
	case t.ChangesState(), t.IsCreation():
		return TopicFor(t.Action)
	}
	return "", false
}

// ContentTransitionedEvent is published in the same transaction as the state write.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicContentApproved) etc.
type ContentTransitionedEvent struct {
	EventID        uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version        int       `json:"version"`  // Schema version; increment on breaking changes
	ContentID      uuid.UUID `json:"content_id"`
	UniversityID   uuid.UUID `json:"university_id"`
	Kind           string    `json:"kind"`
	Action         string    `json:"action"`
	FromState      string    `json:"from_state,omitempty"`
	ToState        string    `json:"to_state"`
	ActorID        uuid.UUID `json:"actor_id"`
	ContentVersion int64     `json:"content_version"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewContentTransitionedEvent builds the event for a committed transition.
func NewContentTransitionedEvent(item *models.ContentItem, t models.Transition) ContentTransitionedEvent {
	action := string(t.Action)
	if t.IsRevision() {
		action = ActionRevised
	}
	return ContentTransitionedEvent{
		EventID:        uuid.New(),
		Version:        EventVersion,
		ContentID:      item.ID,
		UniversityID:   item.UniversityID,
		Kind:           string(item.Kind),
		Action:         action,
		FromState:      string(t.From),
		ToState:        string(t.To),
		ActorID:        t.ActorID,
		ContentVersion: item.Version,
		OccurredAt:     t.At,
	}
}
