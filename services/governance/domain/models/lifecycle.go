package models

import "fmt"

// LifecycleState is the approval state of a ContentItem.
type LifecycleState string

const (
	StatePending   LifecycleState = "PENDING"
	StateApproved  LifecycleState = "APPROVED"
	StatePublished LifecycleState = "PUBLISHED"
	StateRejected  LifecycleState = "REJECTED"
)

// transitions lists the allowed next states for each state.
// PUBLISHED has no outgoing edges.
var transitions = map[LifecycleState][]LifecycleState{
	StatePending:  {StateApproved, StateRejected},
	StateApproved: {StatePublished},
	StateRejected: {StatePending},
}

// ParseLifecycleState converts a stored string into a LifecycleState.
func ParseLifecycleState(s string) (LifecycleState, error) {
	st := LifecycleState(s)
	switch st {
	case StatePending, StateApproved, StatePublished, StateRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown lifecycle state %q", s)
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s LifecycleState) CanTransitionTo(next LifecycleState) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s LifecycleState) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s LifecycleState) String() string {
	return string(s)
}
