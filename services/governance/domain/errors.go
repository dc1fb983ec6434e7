package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the governance domain. Use errors.Is() to check these.
var (
	// ErrValidation indicates malformed or missing required input at the call boundary.
	ErrValidation = errors.New("validation error")

	// ErrPolicyViolation indicates content fails policy and the step requires compliance.
	ErrPolicyViolation = errors.New("policy violation")

	// ErrInvalidTransition indicates the current lifecycle state or the actor's
	// role does not satisfy the transition's precondition.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrUnauthorizedActor is the role half of ErrInvalidTransition.
	ErrUnauthorizedActor = fmt.Errorf("%w: actor lacks the required capability", ErrInvalidTransition)

	// ErrContentNotFound indicates the requested content item does not exist.
	ErrContentNotFound = errors.New("content not found")

	// ErrUserNotFound indicates the identity provider has no record of the user.
	ErrUserNotFound = errors.New("user not found")

	// ErrVersionConflict is returned by a ContentStore when the stored version
	// no longer matches the version the caller read.
	ErrVersionConflict = errors.New("content version conflict")

	// ErrDeliveryFailure marks a single notification that could not be delivered.
	// Never surfaced from the pipeline.
	ErrDeliveryFailure = errors.New("notification delivery failed")

	// ErrAuditWrite indicates a committed transition whose audit entry could not be stored.
	ErrAuditWrite = errors.New("audit write failed")
)

// PolicyViolationError carries the fresh violation list that blocked a step.
// errors.Is(err, ErrPolicyViolation) matches it.
type PolicyViolationError struct {
	Score      int
	Violations []string
}

func (e *PolicyViolationError) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("%s: compliance score %d below threshold", ErrPolicyViolation, e.Score)
	}
	return fmt.Sprintf("%s: %s", ErrPolicyViolation, strings.Join(e.Violations, "; "))
}

func (e *PolicyViolationError) Unwrap() error { return ErrPolicyViolation }
