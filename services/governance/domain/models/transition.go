package models

import (
	"time"

	"github.com/google/uuid"
)

// Transition describes one committed change to a ContentItem. Stores use it
// to publish the matching domain event in the same write.
//
// A revision that leaves the state unchanged (a resubmission that still fails
// policy) has an empty Action and From == To. It bumps the version and is not
// audited.
type Transition struct {
	Action  AuditAction
	From    LifecycleState
	To      LifecycleState
	ActorID uuid.UUID
	At      time.Time
}

// ChangesState reports whether the transition moved the lifecycle state.
func (t Transition) ChangesState() bool {
	return t.Action != "" && t.From != t.To
}

// IsCreation reports whether the transition created the item.
func (t Transition) IsCreation() bool {
	return t.Action == ActionSubmit && t.From == ""
}

// IsRevision reports whether the transition rewrote fields in place.
func (t Transition) IsRevision() bool {
	return t.Action == "" && t.From != "" && t.From == t.To
}
